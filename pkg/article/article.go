// Package article reads the article/question/answer documents that
// cipherwen enciphers.
//
// A document is a list of articles separated by the article separator. Each
// article is its text, the Q&A separator, then one line per question and
// answer in turn. Every Q&A line starts with a two-character prefix such as
// "Q:" or "A:" that is dropped:
//
//	Apples grow on trees.
//	------------
//	Q:What grows on trees?
//	A:Apples
//	Q:Where do apples grow?
//	A:On trees
//	============
//	Aprons are worn in kitchens.
//	...
//
// Only ASCII letters survive parsing; everything else is stripped.
package article

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/cipherwen/pkg/config"
	"github.com/matzehuels/cipherwen/pkg/errors"
)

// PrefixLength is the width of the "Q:"/"A:" marker on each Q&A line.
const PrefixLength = 2

// Article is one parsed article and its cipher segments.
type Article struct {
	Text   string `json:"text"`
	Cipher string `json:"cipher,omitempty"`
	QAs    []QA   `json:"qas"`
}

// QA is a question and its answer.
type QA struct {
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	CipherAnswer string `json:"cipher_answer,omitempty"`
}

// Answers returns the answer of every Q&A pair in order.
func (a Article) Answers() []string {
	out := make([]string, len(a.QAs))
	for i, qa := range a.QAs {
		out[i] = qa.Answer
	}
	return out
}

// ReadFile parses the document at path.
func ReadFile(path string, sep config.Separators) ([]Article, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "articles file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open articles file %s", path)
	}
	defer f.Close()
	return Parse(f, sep)
}

// Parse reads a whole document from r. Blank chunks between article
// separators are skipped.
func Parse(r io.Reader, sep config.Separators) ([]Article, error) {
	if err := sep.Validate(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read articles")
	}

	var articles []Article
	for _, chunk := range strings.Split(string(data), sep.Article) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		a, err := parseArticle(chunk, sep.QA, len(articles))
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if len(articles) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no articles found")
	}
	return articles, nil
}

func parseArticle(chunk, qaSep string, index int) (Article, error) {
	text, block, ok := strings.Cut(chunk, qaSep)
	if !ok {
		return Article{}, errors.New(errors.ErrCodeInvalidInput, "article %d: missing Q&A separator %q", index, qaSep)
	}

	a := Article{Text: ExtractLetters(text)}
	if a.Text == "" {
		return Article{}, errors.New(errors.ErrCodeInvalidInput, "article %d: text has no letters", index)
	}

	lines, err := qaLines(block)
	if err != nil {
		return Article{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "article %d", index)
	}
	if len(lines) == 0 {
		return Article{}, errors.New(errors.ErrCodeInvalidInput, "article %d: no questions", index)
	}
	if len(lines)%2 != 0 {
		return Article{}, errors.New(errors.ErrCodeInvalidInput, "article %d: question %d has no answer", index, len(lines)/2)
	}

	for i := 0; i < len(lines); i += 2 {
		q, err := stripPrefix(lines[i])
		if err != nil {
			return Article{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "article %d: question %d", index, i/2)
		}
		ans, err := stripPrefix(lines[i+1])
		if err != nil {
			return Article{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "article %d: answer %d", index, i/2)
		}
		a.QAs = append(a.QAs, QA{Question: ExtractLetters(q), Answer: ExtractLetters(ans)})
	}
	return a, nil
}

// qaLines returns the non-blank, trimmed lines of a Q&A block.
func qaLines(block string) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(block))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

func stripPrefix(line string) (string, error) {
	r := []rune(line)
	if len(r) < PrefixLength {
		return "", errors.New(errors.ErrCodeInvalidInput, "line %q is too short", line)
	}
	return string(r[PrefixLength:]), nil
}

// ExtractLetters keeps only the ASCII letters of s.
func ExtractLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			b.WriteByte(c)
		}
	}
	return b.String()
}
