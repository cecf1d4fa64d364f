package processing

import (
	"regexp"
	"strings"
)

// Word-count thresholds for a ~8 second clip at normal speaking pace
// (150 wpm). Segments below the minimum read as rushed filler; above the
// absolute ceiling they no longer fit the clip.
const (
	minWordsPerSegment = 15
	maxWordsPerSegment = 22
	mergeWordCeiling   = 30
)

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// splitSentences extracts terminal-punctuated sentences. A script with no
// terminal punctuation at all is treated as a single sentence.
func splitSentences(script string) []string {
	sentences := sentencePattern.FindAllString(script, -1)
	if len(sentences) == 0 {
		return []string{script}
	}
	return sentences
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// SplitScript chunks a script into dialogue segments sized for 8-second
// clips. Sentences are never split; the word-count band is best effort.
// Pure function: same script always yields the same chunks.
func SplitScript(script string) []string {
	sentences := splitSentences(script)

	// Greedy forward pass: grow each chunk until it clears the minimum,
	// accepting an overshoot past the maximum only when the chunk would
	// otherwise stay under-length.
	var rawSegments []string
	for i := 0; i < len(sentences); i++ {
		current := strings.TrimSpace(sentences[i])
		currentWords := wordCount(current)
		for currentWords < minWordsPerSegment && i+1 < len(sentences) {
			i++
			next := strings.TrimSpace(sentences[i])
			nextWords := wordCount(next)
			if currentWords+nextWords > maxWordsPerSegment {
				if currentWords < minWordsPerSegment {
					current += " " + next
					currentWords += nextWords
				} else {
					i--
					break
				}
			} else {
				current += " " + next
				currentWords += nextWords
			}
		}
		rawSegments = append(rawSegments, current)
	}

	// Repair pass: under-length chunks borrow the first sentence of the
	// following chunk when that stays within the maximum, otherwise merge
	// the whole next chunk if the result stays under the ceiling. The final
	// chunk has nothing to borrow from and is left as-is.
	var finalSegments []string
	for i := 0; i < len(rawSegments); i++ {
		segment := rawSegments[i]
		words := wordCount(segment)
		if words < minWordsPerSegment && i < len(rawSegments)-1 {
			next := rawSegments[i+1]
			nextWords := wordCount(next)
			if nextWords > minWordsPerSegment {
				nextSentences := splitSentences(next)
				if len(nextSentences) > 1 {
					borrowed := strings.TrimSpace(nextSentences[0])
					if words+wordCount(borrowed) <= maxWordsPerSegment {
						finalSegments = append(finalSegments, segment+" "+borrowed)
						rawSegments[i+1] = joinSentences(nextSentences[1:])
						continue
					}
				}
			}
			merged := segment + " " + next
			if wordCount(merged) <= mergeWordCeiling {
				finalSegments = append(finalSegments, merged)
				i++
				continue
			}
		}
		finalSegments = append(finalSegments, segment)
	}

	return finalSegments
}

func joinSentences(sentences []string) string {
	trimmed := make([]string, 0, len(sentences))
	for _, s := range sentences {
		trimmed = append(trimmed, strings.TrimSpace(s))
	}
	return strings.Join(trimmed, " ")
}
