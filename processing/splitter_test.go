package processing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sentence builds a sentence of exactly n words ending in a period.
func sentence(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i+1)
	}
	return strings.Join(words, " ") + "."
}

func TestSplitScriptOneSentencePerChunkWhenSentencesMeetMinimum(t *testing.T) {
	// Four sentences of 15 words each: every sentence alone already meets
	// the minimum, so each becomes its own chunk.
	sentences := []string{sentence(15), sentence(15), sentence(15), sentence(15)}
	script := strings.Join(sentences, " ")

	chunks := SplitScript(script)

	require.Len(t, chunks, 4)
	for i, chunk := range chunks {
		assert.Equal(t, sentences[i], chunk)
	}
}

func TestSplitScriptMergesShortSentences(t *testing.T) {
	// Six sentences of 5 words each merge greedily into two chunks of
	// three sentences (15 words) apiece.
	var sentences []string
	for i := 0; i < 6; i++ {
		sentences = append(sentences, sentence(5))
	}
	script := strings.Join(sentences, " ")

	chunks := SplitScript(script)

	require.Len(t, chunks, 2)
	assert.Equal(t, 15, wordCount(chunks[0]))
	assert.Equal(t, 15, wordCount(chunks[1]))
}

func TestSplitScriptNeverSplitsOversizedSentence(t *testing.T) {
	// A single 40-word sentence exceeds the maximum but is never split.
	script := sentence(40)

	chunks := SplitScript(script)

	require.Len(t, chunks, 1)
	assert.Equal(t, 40, wordCount(chunks[0]))
}

func TestSplitScriptNoTerminalPunctuation(t *testing.T) {
	script := "just a handful of words with no punctuation at all"

	chunks := SplitScript(script)

	require.Len(t, chunks, 1)
	assert.Equal(t, script, chunks[0])
}

func TestSplitScriptSingleShortSentence(t *testing.T) {
	script := "Buy it now!"

	chunks := SplitScript(script)

	require.Len(t, chunks, 1)
	assert.Equal(t, "Buy it now!", chunks[0])
}

func TestSplitScriptFinalChunkMayStayUnderLength(t *testing.T) {
	// A 15-word sentence followed by a 5-word sentence: the trailing chunk
	// stays under the minimum because there is nothing left to borrow from.
	script := sentence(15) + " " + sentence(5)

	chunks := SplitScript(script)

	require.Len(t, chunks, 2)
	assert.Equal(t, 15, wordCount(chunks[0]))
	assert.Equal(t, 5, wordCount(chunks[1]))
}

func TestSplitScriptCoversEverySentenceInOrder(t *testing.T) {
	// Chunk coverage: space-joining all chunks reproduces every sentence
	// exactly once, in original order.
	scripts := []string{
		strings.Join([]string{sentence(3), sentence(9), sentence(4), sentence(7), sentence(2), sentence(6)}, " "),
		strings.Join([]string{sentence(22), sentence(1), sentence(30), sentence(15)}, " "),
		strings.Join([]string{sentence(5), sentence(5)}, " "),
		sentence(12),
	}
	for _, script := range scripts {
		chunks := SplitScript(script)
		assert.Equal(t, script, strings.Join(chunks, " "))
	}
}

func TestSplitScriptNoChunkBoundaryInsideSentence(t *testing.T) {
	var sentences []string
	for i := 0; i < 10; i++ {
		sentences = append(sentences, sentence(4+i%5))
	}
	script := strings.Join(sentences, " ")

	chunks := SplitScript(script)

	// Every chunk ends on a sentence boundary.
	for _, chunk := range chunks {
		assert.Regexp(t, `[.!?]$`, chunk)
	}
	assert.Equal(t, script, strings.Join(chunks, " "))
}

func TestSplitScriptBandComplianceForShortSentences(t *testing.T) {
	// For scripts of sentences no longer than 7 words, every chunk except
	// possibly the final one lands inside the 15-22 word band.
	var sentences []string
	for i := 0; i < 20; i++ {
		sentences = append(sentences, sentence(3+i%5))
	}
	script := strings.Join(sentences, " ")

	chunks := SplitScript(script)

	require.NotEmpty(t, chunks)
	for i, chunk := range chunks[:len(chunks)-1] {
		words := wordCount(chunk)
		assert.GreaterOrEqual(t, words, minWordsPerSegment, "chunk %d", i)
		assert.LessOrEqual(t, words, maxWordsPerSegment, "chunk %d", i)
	}
}

func TestSplitScriptIsDeterministic(t *testing.T) {
	script := strings.Join([]string{sentence(6), sentence(11), sentence(3), sentence(18), sentence(7)}, " ")

	first := SplitScript(script)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, SplitScript(script))
	}
}
