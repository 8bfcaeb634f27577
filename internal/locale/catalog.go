package locale

import (
	"fmt"

	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Phrase keys. Every key must have a text for every supported locale.
const (
	StateExternal   = "state.external"
	StateReady      = "state.ready"
	StateExecuting  = "state.executing"
	StateSuspended  = "state.suspended"
	StateWaiting    = "state.waiting"
	StateTerminated = "state.terminated"

	ProcStateTitle       = "procstate.title"
	ProcStateGuidelines  = "procstate.guidelines"
	ProcStateAnswers     = "procstate.answers"
	ProcStateCorrect     = "procstate.correct"
	ProcStateWrong       = "procstate.wrong"
	ProcStateImpossible  = "procstate.impossible"
	ProcStateInvalidHead = "procstate.invalid_head"

	TaskTreeTitle       = "tasktree.title"
	TaskTreeGuidelines  = "tasktree.guidelines"
	TaskTreeInstruction = "tasktree.instruction"
	TaskTreeReverseOne  = "tasktree.reverse.one"
	TaskTreeReverseMany = "tasktree.reverse.many"
	TaskTreeAnswers     = "tasktree.answers"

	DocCourse           = "doc.course"
	DocDefaultTitle     = "doc.default_title"
	DocCorrectionSuffix = "doc.correction_suffix"
	DocPDFLanguage      = "doc.pdf_language"

	CLIWelcome    = "cli.welcome"
	CLIGenerating = "cli.generating"
	CLILeet       = "cli.leet"
)

var phrases = map[string]map[Locale]string{
	StateExternal:   {FR: "Extérieur", EN: "External"},
	StateReady:      {FR: "Prêt", EN: "Ready"},
	StateExecuting:  {FR: "Exécution", EN: "Execution"},
	StateSuspended:  {FR: "Suspendu", EN: "Suspended"},
	StateWaiting:    {FR: "Attente", EN: "Waiting"},
	StateTerminated: {FR: "Terminé", EN: "Terminated"},

	ProcStateTitle: {FR: "Suite d'états de processus", EN: "Process states series"},
	ProcStateGuidelines: {
		FR: "Les processus dans un système d'exploitation ont très souvent un état. " +
			"Définissez l'état d'un processus et expliquez son utilité. " +
			"Rappelez le schéma des transitions entre états qu'un processus peut subir (son cycle de vie) et expliquez chaque transition.\n" +
			"Pour chaque suite d'états dans la liste suivante, indiquez si elle est possible ou non et argumentez votre réponse.",
		EN: "Processes in an operating system are almost always described by a state. " +
			"Define what a process state is and explain its uses. " +
			"Draw the possible transitions between the states (the process life cycle) and explain each of the transitions.\n" +
			"For each series of states in the following list, indicate whether it is likely to occur in real life or not, and argue.",
	},
	ProcStateAnswers: {
		FR: "Voici les réponses pour l'exercice Suite d'états de processus.",
		EN: "Here are the answers for the Process states series exercise.",
	},
	ProcStateCorrect: {
		FR: "Cette suite d'états de processus était correcte.",
		EN: "This series of process states was correct.",
	},
	ProcStateWrong: {
		FR: "Cette suite d'états de processus était fausse.",
		EN: "This series of process states was wrong.",
	},
	ProcStateImpossible: {
		FR: "La transition %s vers %s est impossible.",
		EN: "The transition %s towards %s is not possible.",
	},
	ProcStateInvalidHead: {
		FR: "Une suite ne peut pas commencer par l'état %s : un processus commence toujours à l'état %s.",
		EN: "A series cannot start with state %s: a process always starts in state %s.",
	},

	TaskTreeTitle: {FR: "Ecriture de programmes parallèles", EN: "Write parallel programs"},
	TaskTreeGuidelines: {
		FR: "La plupart des librairies de programmation parallèle fournissent des primitives réalisant la \\textit{composition parallèle} : la mise en parallèle de plusieurs tâches. " +
			"Le paradigme de programmation impérative fournit à son tour la composition séquentielle : l'exécution de plusieurs tâches l'une à la suite de l'autre.\n\n" +
			"La composition parallèle est souvent écrite en utilisant le symbole ||, alors que la composition séquentielle est notée en juxtaposant les tâches. " +
			"Par exemple, $(T_1||T_2)T_3$ exprime la composition parallèle des tâches $T_1$ et $T_2$, et ensuite la composition séquentielle du résultat avec la tâche $T_3$.\n\n" +
			"Cependant, lorsqu'on souhaite décrire dans un pseudocode le contenu de tâches composées, il est plus pratique d'utiliser des constructions \\textbf{parbegin / parend} pour la composition parallèle " +
			"et \\textbf{begin / end} pour la composition séquentielle. L'exemple précédent s'exprimerait avec ces constructions comme ceci :",
		EN: "Most parallel programming libraries provide primitives implementing the \\textit{parallel composition}: the side-by-side execution of several tasks. " +
			"The imperative programming paradigm also provides the sequential composition: the execution of tasks one after the other.\n\n" +
			"The parallel composition is often written using the || symbol, while the sequential composition is written by putting tasks next to each other. " +
			"As an example, $(T_1||T_2)T_3$ describes the parallel composition of tasks $T_1$ and $T_2$, and then the sequential composition of the result with task $T_3$.\n\n" +
			"However, when one wants to describe composed tasks in pseudocode, it is more convenient to use \\textbf{parbegin / parend} keywords for the parallel composition " +
			"and \\textbf{begin / end} for the sequential composition. The previous example would be expressed with these constructions in the following way:",
	},
	TaskTreeInstruction: {
		FR: "Ecrivez les expressions suivantes avec les constructions \\textbf{parbegin / parend} et \\textbf{begin / end} :",
		EN: "Write the following expressions using the \\textbf{parbegin / parend} and \\textbf{begin / end} formulations:",
	},
	TaskTreeReverseOne: {
		FR: "A l'inverse, convertissez ce pseudo-code en formulation compacte à l'aide des opérateurs || :",
		EN: "The other way round, convert this pseudocode into a compact formulation using the || operator:",
	},
	TaskTreeReverseMany: {
		FR: "A l'inverse, convertissez ces pseudo-codes en formulation compacte à l'aide des opérateurs || :",
		EN: "The other way round, convert these pseudocodes into compact formulations using the || operator:",
	},
	TaskTreeAnswers: {
		FR: "Voici les réponses pour l'exercice Ecriture de programmes parallèles.",
		EN: "Here are the answers for the Write parallel programs exercise.",
	},

	DocCourse:           {FR: "Systèmes d'exploitation (SYE)", EN: "Operating Systems"},
	DocDefaultTitle:     {FR: "Mon premier TD de SYE", EN: "My first Operating Systems exam"},
	DocCorrectionSuffix: {FR: " (Correction)", EN: " (Correction)"},
	DocPDFLanguage:      {FR: "French", EN: "English"},

	CLIWelcome:    {FR: "OpenSYE Pro Plus Max 11 SE - Bienvenue", EN: "OpenSYE Pro Plus Max 11 SE - Welcome"},
	CLIGenerating: {FR: "Génération de %s exercices de SYE des annales %s.", EN: "Generating %s SYE exercises from year %s exam sheets."},
	CLILeet:       {FR: "Traduction en l33t-5p34k de niveau %s.", EN: "Translating them to level %s l33t-5p34k."},
}

var printers map[Locale]*message.Printer

func init() {
	b := catalog.NewBuilder()
	for key, texts := range phrases {
		for _, l := range Supported {
			text, ok := texts[l]
			if !ok {
				panic(fmt.Sprintf("locale: phrase %q has no %s text", key, l))
			}
			if err := b.SetString(l.Tag(), key, text); err != nil {
				panic(fmt.Sprintf("locale: registering phrase %q: %v", key, err))
			}
		}
	}
	printers = make(map[Locale]*message.Printer, len(Supported))
	for _, l := range Supported {
		printers[l] = message.NewPrinter(l.Tag(), message.Catalog(b))
	}
}

// Text returns the phrase for key in the given locale, formatted with args.
// Numeric arguments should be passed pre-formatted as strings to keep them
// free of locale digit grouping.
func Text(l Locale, key string, args ...any) string {
	p, ok := printers[l]
	if !ok {
		p = printers[EN]
	}
	return p.Sprintf(key, args...)
}

// Keys returns every registered phrase key.
func Keys() []string {
	keys := make([]string, 0, len(phrases))
	for k := range phrases {
		keys = append(keys, k)
	}
	return keys
}
