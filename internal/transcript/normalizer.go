package transcript

import "strings"

// tokenPunctuation lists the characters stripped from token edges before
// correction-table lookup. Interior punctuation (as in "pull-up") is kept.
const tokenPunctuation = ".,;:!?\"'()[]{}"

// minFuzzyWordLen is the token length (strictly greater than) required for
// the single-word fuzzy pass. Short tokens produce too many false fuzzy
// hits to be worth correcting.
const minFuzzyWordLen = 4

// CorrectTranscript normalizes a raw speech-to-text transcript into
// canonical workout-logging vocabulary. It is deterministic and total:
// any input, including the empty string, yields a result without error.
// Unrecognized tokens pass through unchanged.
//
// Three passes run in order, narrowest first:
//
//  1. Word pass: each whitespace token, with edge punctuation stripped, is
//     looked up in the correction table and replaced on a hit.
//  2. Bigram pass: each adjacent pair of original tokens is matched
//     against the vocabulary at [DefaultMatchThreshold]; a hit replaces
//     the first textual occurrence of the pair in the working string.
//     This is a substring replacement, not a position-indexed rewrite: if
//     the pair's text occurs earlier elsewhere, or was already rewritten
//     by the word pass, the replacement lands there or not at all.
//  3. Word fuzzy pass: each original token longer than four characters is
//     matched against the vocabulary; a hit rewrites every whole-word
//     occurrence of the token, by token index, and can overwrite earlier
//     corrections.
func (e *Engine) CorrectTranscript(transcript string) string {
	corrected, _ := e.correct(transcript)
	return corrected
}

// correct is the instrumented form of [Engine.CorrectTranscript]: it also
// returns the substitutions applied, for pipeline auditing.
func (e *Engine) correct(transcript string) (string, []Correction) {
	lowered := strings.ToLower(strings.TrimSpace(transcript))
	tokens := strings.Fields(lowered)
	if len(tokens) == 0 {
		return lowered, nil
	}

	var corrections []Correction

	// Pass 1: authoritative token-level table substitution.
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		clean := strings.Trim(tok, tokenPunctuation)
		repl, ok := e.corrections.Lookup(clean)
		if !ok {
			out[i] = tok
			continue
		}
		out[i] = repl
		if repl != tok {
			corrections = append(corrections, Correction{
				Original:   tok,
				Corrected:  repl,
				Confidence: 1.0,
				Method:     MethodTable,
			})
		}
	}
	corrected := strings.Join(out, " ")

	// Pass 2: bigram fuzzy substitution over the original token list.
	for i := 0; i+1 < len(tokens); i++ {
		pair := tokens[i] + " " + tokens[i+1]
		match, score, ok := e.bestMatch(pair, e.matchThreshold)
		if !ok || match == pair {
			continue
		}
		if replaced := strings.Replace(corrected, pair, match, 1); replaced != corrected {
			corrected = replaced
			corrections = append(corrections, Correction{
				Original:   pair,
				Corrected:  match,
				Confidence: score,
				Method:     MethodBigram,
			})
		}
	}

	// Pass 3: single-word fuzzy substitution, rewriting by token index so
	// a corrected value cannot be re-matched as a substring of another
	// token already in the string.
	words := strings.Fields(corrected)
	rewritten := false
	for _, tok := range tokens {
		if len(tok) <= minFuzzyWordLen {
			continue
		}
		match, score, ok := e.bestMatch(tok, e.matchThreshold)
		if !ok || match == tok {
			continue
		}
		hit := false
		for j := range words {
			if words[j] == tok {
				words[j] = match
				hit = true
			}
		}
		if hit {
			rewritten = true
			corrections = append(corrections, Correction{
				Original:   tok,
				Corrected:  match,
				Confidence: score,
				Method:     MethodWord,
			})
		}
	}
	if rewritten {
		corrected = strings.Join(words, " ")
	}

	return corrected, corrections
}
