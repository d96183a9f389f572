package match

// stopwords is the fixed set of common English words excluded from keyword
// scoring. Keyword qualification depends on this exact set, so changing it
// changes every score.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "the", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with",
		"is", "are", "was", "were", "be", "been", "have", "has", "had", "do", "does", "did",
		"will", "would", "could", "should", "may", "might", "must", "shall", "can", "need",
		"that", "this", "these", "those", "it", "its", "we", "you", "your", "our", "their",
		"from", "by", "as", "if", "so", "not", "no", "nor", "yet", "both", "either", "about",
		"above", "after", "before", "between", "into", "through", "during", "including",
		"without", "within", "along", "following", "across", "behind", "beyond", "plus",
		"except", "up", "out", "around", "down", "off", "over", "under", "again", "further",
		"then", "once", "more", "also", "just", "than", "other", "such", "any", "all", "each",
		"how", "what", "when", "where", "who", "which", "while", "per", "etc", "ie", "eg",
	} {
		stopwords[w] = struct{}{}
	}
}
