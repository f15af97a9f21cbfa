package word

// AddWordsInput contains the words to store
type AddWordsInput struct {
	Words []string
}

// AddWordsOutput reports how many words were new
type AddWordsOutput struct {
	Added int
}

// DefaultWords is the starter list seeded into an empty store
var DefaultWords = []string{
	"apple",
	"banana",
	"house",
	"cat",
	"dog",
	"car",
	"bicycle",
	"tree",
	"sun",
	"moon",
	"star",
	"book",
	"phone",
	"computer",
	"keyboard",
	"guitar",
	"pizza",
	"cake",
	"ball",
	"river",
}
