package analysis

// Fixed tables backing the heuristic analyzer. Kept in one place so the
// fallback behavior is auditable.

// stopWords is a set of common English stop words.
var stopWords = map[string]bool{
	"the": true, "be": true, "to": true, "of": true, "and": true,
	"a": true, "in": true, "that": true, "have": true, "i": true,
	"it": true, "for": true, "not": true, "on": true, "with": true,
	"he": true, "as": true, "you": true, "do": true, "at": true,
	"this": true, "but": true, "his": true, "by": true, "from": true,
	"they": true, "we": true, "her": true, "she": true,
	"or": true, "an": true, "will": true, "my": true, "one": true,
	"all": true, "would": true, "there": true, "their": true, "what": true,
	"so": true, "up": true, "out": true, "if": true, "about": true,
	"who": true, "which": true, "me": true,
	"when": true, "can": true,
	"no": true, "just": true, "him": true,
	"into": true, "your": true,
	"some": true, "could": true, "them": true, "other": true,
	"than": true, "then": true, "now": true, "only": true,
	"its": true, "over": true, "also": true,
	"after": true, "how": true,
	"our": true, "well": true,
	"even": true, "because": true, "any": true,
	"these": true, "most": true, "us": true,
	"is": true, "was": true, "are": true, "been": true, "has": true,
	"had": true, "were": true, "did": true, "having": true,
	"may": true, "am": true, "should": true, "too": true, "very": true,
	"here": true, "where": true, "why": true, "again": true, "once": true,
	"does": true, "doing": true, "each": true, "both": true, "more": true,
}

// closedClass maps function words to their part of speech.
var closedClass = map[string]string{
	"i": "PRON", "you": "PRON", "he": "PRON", "she": "PRON", "it": "PRON",
	"we": "PRON", "they": "PRON", "me": "PRON", "him": "PRON", "her": "PRON",
	"us": "PRON", "them": "PRON", "who": "PRON", "what": "PRON",

	"the": "DET", "a": "DET", "an": "DET", "this": "DET", "that": "DET",
	"these": "DET", "those": "DET", "my": "DET", "your": "DET", "his": "DET",
	"its": "DET", "our": "DET", "their": "DET",

	"in": "ADP", "on": "ADP", "at": "ADP", "to": "ADP", "of": "ADP",
	"with": "ADP", "by": "ADP", "from": "ADP", "about": "ADP",
	"into": "ADP", "over": "ADP", "under": "ADP", "after": "ADP",
	"before": "ADP",

	"and": "CCONJ", "or": "CCONJ", "but": "CCONJ",
	"if": "SCONJ", "because": "SCONJ", "when": "SCONJ", "while": "SCONJ",

	"not": "PART", "no": "DET",

	"is": "AUX", "am": "AUX", "are": "AUX", "was": "AUX", "were": "AUX",
	"be": "AUX", "been": "AUX", "being": "AUX",
	"have": "AUX", "has": "AUX", "had": "AUX",
	"do": "AUX", "does": "AUX", "did": "AUX",
	"will": "AUX", "would": "AUX", "can": "AUX", "could": "AUX",
	"may": "AUX", "might": "AUX", "should": "AUX", "must": "AUX",

	"very": "ADV", "too": "ADV", "so": "ADV", "just": "ADV",
	"now": "ADV", "then": "ADV", "here": "ADV", "there": "ADV",
	"always": "ADV", "never": "ADV",
}

// verbLexicon lists common content verbs, including every verb the word
// classifier routes to motor or sensory memory.
var verbLexicon = map[string]bool{
	"move": true, "press": true, "turn": true, "click": true, "go": true,
	"run": true, "see": true, "hear": true, "feel": true, "touch": true,
	"smell": true, "taste": true, "look": true, "listen": true,
	"say": true, "tell": true, "ask": true, "talk": true, "speak": true,
	"know": true, "think": true, "remember": true, "forget": true,
	"want": true, "need": true, "like": true, "love": true, "hate": true,
	"make": true, "take": true, "give": true, "get": true, "put": true,
	"come": true, "leave": true, "stay": true, "walk": true, "sit": true,
	"stand": true, "open": true, "close": true, "start": true, "stop": true,
	"play": true, "work": true, "live": true, "eat": true, "drink": true,
	"sleep": true, "read": true, "write": true, "buy": true, "sell": true,
	"meet": true, "visit": true, "call": true, "help": true, "try": true,
	"use": true, "find": true, "lose": true, "win": true, "learn": true,
}

// irregularLemmas maps irregular inflections to their lemma.
var irregularLemmas = map[string]string{
	"ran": "run", "running": "run", "runs": "run",
	"saw": "see", "seen": "see", "sees": "see", "seeing": "see",
	"heard": "hear", "hears": "hear",
	"felt": "feel", "feels": "feel", "feeling": "feel",
	"went": "go", "gone": "go", "goes": "go", "going": "go",
	"came": "come", "coming": "come",
	"said": "say", "says": "say",
	"told": "tell", "tells": "tell",
	"knew": "know", "known": "know", "knows": "know",
	"thought": "think", "thinks": "think",
	"made": "make", "makes": "make", "making": "make",
	"took": "take", "taken": "take", "takes": "take", "taking": "take",
	"gave": "give", "given": "give", "gives": "give", "giving": "give",
	"got": "get", "gotten": "get", "gets": "get", "getting": "get",
	"met": "meet", "meets": "meet", "meeting": "meeting",
	"ate": "eat", "eaten": "eat", "eats": "eat",
	"slept": "sleep", "sleeps": "sleep",
	"wrote": "write", "written": "write", "writes": "write", "writing": "write",
	"bought": "buy", "buys": "buy",
	"sold": "sell", "sells": "sell",
	"found": "find", "finds": "find",
	"lost": "lose", "loses": "lose", "losing": "lose",
	"won": "win", "wins": "win", "winning": "win",
	"left": "leave", "leaves": "leave", "leaving": "leave",
	"sat": "sit", "sits": "sit", "sitting": "sit",
	"stood": "stand", "stands": "stand", "standing": "stand",
	"children": "child", "people": "person", "men": "man", "women": "woman",
	"feet": "foot", "teeth": "tooth", "mice": "mouse",
}

// sentimentLexicon assigns polarity to opinion words.
var sentimentLexicon = map[string]float64{
	"good": 0.7, "great": 0.8, "excellent": 1.0, "wonderful": 1.0,
	"amazing": 0.9, "awesome": 0.9, "fantastic": 0.9, "nice": 0.6,
	"love": 0.8, "like": 0.4, "enjoy": 0.6, "happy": 0.8, "glad": 0.7,
	"beautiful": 0.85, "perfect": 1.0, "best": 1.0, "better": 0.5,
	"fun": 0.6, "cool": 0.5, "pleasant": 0.6, "delicious": 0.8,
	"friendly": 0.6, "kind": 0.6, "helpful": 0.5,

	"bad": -0.7, "terrible": -1.0, "awful": -1.0, "horrible": -1.0,
	"hate": -0.8, "dislike": -0.5, "sad": -0.6, "angry": -0.7,
	"annoying": -0.6, "boring": -0.5, "ugly": -0.7, "worst": -1.0,
	"worse": -0.5, "poor": -0.4, "wrong": -0.5, "broken": -0.4,
	"slow": -0.3, "painful": -0.7, "scary": -0.6, "rude": -0.6,
	"difficult": -0.3, "hard": -0.3,
}

// negators flip the polarity of the word that follows them.
var negators = map[string]bool{
	"not": true, "no": true, "never": true, "n't": true,
	"hardly": true, "barely": true,
}

// dateWords mark tokens typed as DATE entities.
var dateWords = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
	"january": true, "february": true, "march": true, "april": true,
	"may":  false, // too ambiguous with the auxiliary
	"june": true, "july": true, "august": true, "september": true,
	"october": true, "november": true, "december": true,
	"today": true, "tomorrow": true, "yesterday": true,
}

// firstNames is a small gazetteer for PERSON typing and gender inference.
var firstNames = map[string]bool{
	"alice": true, "bob": true, "carol": true, "david": true, "emma": true,
	"frank": true, "grace": true, "henry": true, "isabel": true, "jack": true,
	"karen": true, "liam": true, "mary": true, "noah": true, "olivia": true,
	"peter": true, "quinn": true, "rachel": true, "sam": true, "tom": true,
	"john": true, "james": true, "michael": true, "sarah": true, "anna": true,
	"laura": true, "mark": true, "paul": true, "lucy": true, "sophie": true,
}

// places is a small gazetteer for GPE typing.
var places = map[string]bool{
	"london": true, "paris": true, "berlin": true, "madrid": true,
	"rome": true, "tokyo": true, "york": true, "boston": true,
	"chicago": true, "seattle": true, "amsterdam": true, "vienna": true,
	"dublin": true, "lisbon": true, "oslo": true, "prague": true,
	"america": true, "england": true, "france": true, "germany": true,
	"spain": true, "italy": true, "japan": true, "china": true,
	"india": true, "brazil": true, "canada": true, "australia": true,
}
