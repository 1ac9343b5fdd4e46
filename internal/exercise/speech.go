package exercise

import "errors"

// ErrSpeechUnavailable means the platform cannot synthesize speech.
var ErrSpeechUnavailable = errors.New("exercise: speech synthesis unavailable")

// SpeechNotice is shown inline when speech is unavailable.
const SpeechNotice = "عُذْرًا، مُتَصَفِّحُكَ لَا يَدْعَمُ مِيزَةَ النُّطْقِ."

// Utterance is a request to say a word aloud.
type Utterance struct {
	Text string  `json:"text"`
	Lang string  `json:"lang"`
	Rate float64 `json:"rate"`
}

// Speaker says utterances.
type Speaker interface {
	Speak(u Utterance) error
}

// ClientSpeech hands speech to the browser: the utterance is published in the
// exercise view and the client plays it with its own synthesizer.
type ClientSpeech struct{}

func (ClientSpeech) Speak(Utterance) error { return nil }

// NoSpeech always reports ErrSpeechUnavailable.
type NoSpeech struct{}

func (NoSpeech) Speak(Utterance) error { return ErrSpeechUnavailable }
