package transcript

// voiceInputTips are example phrasings shown to users before they record a
// set. Phrasing close to these patterns survives speech-to-text with the
// fewest corrections.
var voiceInputTips = []string{
	"Say the exercise name first: \"bench press, three sets of eight reps\"",
	"Use plain numbers: \"squats, five by five at one hundred kilos\"",
	"Name the unit: \"deadlift, one set of three at 140 kg\"",
	"Pause briefly between the exercise name and the numbers",
	"One exercise per recording works best",
}

// VoiceInputTips returns static example phrases for voice logging.
// The returned slice is a copy; callers may modify it freely.
func VoiceInputTips() []string {
	tips := make([]string, len(voiceInputTips))
	copy(tips, voiceInputTips)
	return tips
}
