package ai

// MaxEmbedChars is the safety limit on text sent to the embedding provider.
// It exists to respect the provider's input constraints; longer thread text
// is truncated, never sent in full.
const MaxEmbedChars = 8000

// TruncateForEmbedding caps text at MaxEmbedChars, cutting on a rune
// boundary so the transmitted text stays valid UTF-8.
func TruncateForEmbedding(text string) string {
	if len(text) <= MaxEmbedChars {
		return text
	}
	cut := MaxEmbedChars
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
