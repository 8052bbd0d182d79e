package vocab

// defaultPhrases is the compiled-in exercise vocabulary. Multi-word phrases
// and high-frequency exercises come first so the fuzzy scan prefers them.
var defaultPhrases = []string{
	// ─────────────────────────────────────────────────────────────────────────
	// Barbell / machine presses
	// ─────────────────────────────────────────────────────────────────────────
	"bench press",
	"incline bench press",
	"decline bench press",
	"dumbbell press",
	"overhead press",
	"shoulder press",
	"push press",

	// ─────────────────────────────────────────────────────────────────────────
	// Squats
	// ─────────────────────────────────────────────────────────────────────────
	"squat",
	"squats",
	"front squat",
	"back squat",
	"goblet squat",
	"bulgarian split squat",

	// ─────────────────────────────────────────────────────────────────────────
	// Hinges and pulls
	// ─────────────────────────────────────────────────────────────────────────
	"deadlift",
	"deadlifts",
	"romanian deadlift",
	"sumo deadlift",
	"barbell row",
	"dumbbell row",
	"bent over row",
	"cable row",
	"seated row",
	"upright row",
	"lat pulldown",
	"pull-up",
	"pull-ups",
	"chin-up",
	"chin-ups",
	"face pull",
	"shrug",
	"good morning",
	"hip thrust",
	"glute bridge",
	"kettlebell swing",

	// ─────────────────────────────────────────────────────────────────────────
	// Arms and shoulders
	// ─────────────────────────────────────────────────────────────────────────
	"bicep curl",
	"bicep curls",
	"hammer curl",
	"preacher curl",
	"tricep extension",
	"tricep pushdown",
	"skullcrusher",
	"lateral raise",
	"front raise",
	"rear delt fly",
	"chest fly",

	// ─────────────────────────────────────────────────────────────────────────
	// Legs and bodyweight
	// ─────────────────────────────────────────────────────────────────────────
	"leg curl",
	"calf raise",
	"lunge",
	"lunges",
	"step up",
	"push-up",
	"push-ups",
	"dip",
	"dips",
	"plank",
	"crunch",
	"crunches",
	"sit-up",
	"sit-ups",
	"russian twist",
	"hanging leg raise",
	"mountain climber",
	"burpee",
	"burpees",

	// ─────────────────────────────────────────────────────────────────────────
	// Olympic lifts and conditioning
	// ─────────────────────────────────────────────────────────────────────────
	"clean and jerk",
	"power clean",
	"snatch",
	"farmers walk",
	"battle ropes",
	"rowing machine",
	"treadmill",
}

// defaultCorrections is the compiled-in correction table: exact
// replacements for number words, units, and frequent speech-to-text
// mishearings. Multi-word keys (e.g. "dead lift") are reachable only
// through bigram lookups; single-token keys are applied in the word-level
// pass as well.
var defaultCorrections = map[string]string{
	// Number words.
	"zero":      "0",
	"one":       "1",
	"two":       "2",
	"three":     "3",
	"four":      "4",
	"five":      "5",
	"six":       "6",
	"seven":     "7",
	"eight":     "8",
	"nine":      "9",
	"ten":       "10",
	"eleven":    "11",
	"twelve":    "12",
	"fifteen":   "15",
	"twenty":    "20",
	"thirty":    "30",
	"forty":     "40",
	"fifty":     "50",
	"sixty":     "60",
	"hundred":   "100",

	// Number mishearings.
	"won":  "1",
	"too":  "2",
	"tree": "3",
	"free": "3",
	"for":  "4",
	"fore": "4",
	"ate":  "8",

	// Units.
	"kgs":       "kg",
	"kilo":      "kg",
	"kilos":     "kg",
	"kilogram":  "kg",
	"kilograms": "kg",
	"lb":        "lbs",
	"pound":     "lbs",
	"pounds":    "lbs",

	// Set/rep phrasing.
	"repetitions": "reps",
	"raps":        "reps",
	"wraps":       "reps",
	"sats":        "sets",

	// Exercise mishearings and aliases.
	"bentch":       "bench",
	"bentch press": "bench press",
	"benchpress":   "bench press",
	"dead lift":    "deadlift",
	"dead lifts":   "deadlifts",
	"squad":        "squat",
	"squads":       "squats",
	"skwat":        "squat",
	"pull up":      "pull-up",
	"pull ups":     "pull-ups",
	"pullup":       "pull-up",
	"pullups":      "pull-ups",
	"chin up":      "chin-up",
	"chin ups":     "chin-ups",
	"push up":      "push-up",
	"push ups":     "push-ups",
	"pushup":       "push-up",
	"pushups":      "push-ups",
	"sit up":       "sit-up",
	"sit ups":      "sit-ups",
	"situp":        "sit-up",
	"situps":       "sit-ups",
	"kurl":          "curl",
	"lat pull":      "lat pulldown",
	"skull crusher": "skullcrusher",

	// Identity entry: pins the token so the single-word fuzzy pass cannot
	// rewrite it into a containing phrase ("dumbbell row" scores 0.667
	// against the bare word, which would corrupt "dumbbell press").
	"dumbbell": "dumbbell",
}

var (
	defaultVocabulary      = NewVocabulary(defaultPhrases...)
	defaultCorrectionTable = NewCorrections(defaultCorrections)
)

// Default returns the compiled-in exercise [Vocabulary]. The same instance
// is returned on every call; it is immutable.
func Default() *Vocabulary {
	return defaultVocabulary
}

// DefaultCorrections returns the compiled-in [Corrections] table. The same
// instance is returned on every call; it is immutable.
func DefaultCorrections() *Corrections {
	return defaultCorrectionTable
}
