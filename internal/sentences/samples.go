package sentences

import "sort"

// builtinSentences ships a small starter library per language so the
// first run works without an API key or network access.
var builtinSentences = map[string][]string{
	"en": {
		"The train leaves in ten minutes.",
		"Could you say that again, please?",
		"I usually drink coffee before work.",
		"It rained all weekend, so we stayed home and watched movies.",
		"Where did you put the keys?",
		"She has been learning the piano for three years.",
		"Let's meet outside the station at half past six.",
		"The soup needs a little more salt.",
	},
	"de": {
		"Der Zug fährt in zehn Minuten ab.",
		"Kannst du das bitte noch einmal sagen?",
		"Ich trinke morgens meistens Kaffee.",
		"Am Wochenende hat es geregnet, also sind wir zu Hause geblieben.",
		"Wo hast du die Schlüssel hingelegt?",
		"Sie lernt seit drei Jahren Klavier.",
		"Treffen wir uns um halb sieben vor dem Bahnhof.",
		"Die Suppe braucht noch etwas Salz.",
	},
	"es": {
		"El tren sale en diez minutos.",
		"¿Puedes repetir eso, por favor?",
		"Normalmente tomo café antes del trabajo.",
		"Llovió todo el fin de semana, así que nos quedamos en casa.",
		"¿Dónde pusiste las llaves?",
		"Ella lleva tres años aprendiendo piano.",
		"Nos vemos a las seis y media delante de la estación.",
		"A la sopa le falta un poco de sal.",
	},
	"fr": {
		"Le train part dans dix minutes.",
		"Tu peux répéter, s'il te plaît ?",
		"Je bois généralement un café avant le travail.",
		"Il a plu tout le week-end, alors nous sommes restés à la maison.",
		"Où as-tu mis les clés ?",
		"Elle apprend le piano depuis trois ans.",
		"On se retrouve à six heures et demie devant la gare.",
		"Il manque un peu de sel dans la soupe.",
	},
}

// Samples returns the built-in starter sentences for a language, or nil
// when the language ships none.
func Samples(language string) []string {
	return builtinSentences[language]
}

// SampleLanguages lists the languages that ship with starter sentences,
// sorted.
func SampleLanguages() []string {
	langs := make([]string, 0, len(builtinSentences))
	for l := range builtinSentences {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}
