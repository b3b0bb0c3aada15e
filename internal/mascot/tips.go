package mascot

// Tips are the grammar facts the mascot shares when tickled.
var Tips = []string{
	"Did you know? 'Everyone' is always singular!",
	"Watch out! Prepositional phrases don't change the subject.",
	"Tip: 'Here' and 'There' are never subjects.",
	"Fun Fact: 'Economics' ends in 's' but is singular!",
	"Collective nouns like 'Team' usually act as one unit.",
	"Remember: 'Either' and 'Neither' are singular alone.",
	"The verb 'to be' is the most irregular verb!",
	"Don't get tricked by the proximity rule with 'or'!",
	"If you can replace it with 'He/She/It', use an 's'!",
	"Gerunds (like 'Running') take singular verbs.",
	"Use 'were' for wishes: 'I wish I were a bird'!",
	"Amounts of money/time usually take singular verbs.",
	"Titles of books are always singular, even if plural!",
	"'A number of' is plural, but 'The number of' is singular.",
	"Don't let 'along with' or 'as well as' fool you!",
	"Indefinite pronouns ending in -one are always singular.",
	"Fractions like 'half of' depend on the object.",
	"'Pants' and 'Scissors' are always plural nouns.",
	"In 'Neither/Nor', the verb agrees with the closer subject.",
	"'Mathematics' is singular, despite the 's'!",
	"The word 'Police' is always plural: 'The police are here!'",
	"Start a sentence with 'Each'? The verb must be singular!",
	"'Bread and butter' is one meal, so it's singular.",
	"'The United States' is treated as a singular country.",
	"Generic 'He' or 'She' always takes an 's' on the verb.",
	"Relative pronouns (who/that) match the noun before them.",
	"Abstract nouns like 'Honesty' are always singular.",
	"Don't be confused by 'one of the...'! The subject is 'One'.",
	"Plural subjects (We/They) hate 's' on their verbs!",
	"The phrase 'Many a...' is actually singular!",
}
