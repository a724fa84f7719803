// Package broadcast defines the typed messages exchanged between the
// controller and display surfaces, and their JSON wire envelope.
package broadcast

import (
	"encoding/json"
	"fmt"

	lumerr "github.com/eternallight/lumen/core/errors"
)

// Kind identifies a message type on the wire.
type Kind string

const (
	KindShowVerse      Kind = "SHOW_VERSE"
	KindShowNote       Kind = "SHOW_NOTE"
	KindShowSong       Kind = "SHOW_SONG"
	KindShowSlide      Kind = "SHOW_SLIDE"
	KindHideVerse      Kind = "HIDE_VERSE"
	KindUpdateSettings Kind = "UPDATE_SETTINGS"
	KindSetBackground  Kind = "SET_BACKGROUND"
)

// Message is the tagged union sent over the channel. Exactly one payload
// field is populated, matching Kind; HIDE_VERSE carries no payload.
type Message struct {
	Kind       Kind
	Verse      *VersePayload
	Note       *NotePayload
	Song       *SongPayload
	Slide      *SlidePayload
	Settings   *SettingsPayload
	Background *BackgroundPayload
}

// VersePayload carries the text and human-readable reference of a verse.
type VersePayload struct {
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

// NotePayload carries free-form text. IsLiveTyping marks keystrokes being
// mirrored as they are typed, which the display renders without fades.
type NotePayload struct {
	Text         string `json:"text"`
	IsLiveTyping bool   `json:"isLiveTyping,omitempty"`
}

// SongPayload carries one stanza of a song plus its position.
type SongPayload struct {
	Title       string `json:"title"`
	Number      int    `json:"number,omitempty"`
	Text        string `json:"text"`
	StanzaLabel string `json:"stanzaLabel"`
	StanzaIndex int    `json:"stanzaIndex"`
	StanzaTotal int    `json:"stanzaTotal"`
}

// SlidePayload carries a slide image either inline or by URL. Exactly one
// of the two fields is set.
type SlidePayload struct {
	ImageData string `json:"imageData,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// SettingsPayload carries a partial display-settings update. Nil fields
// leave the corresponding setting unchanged.
type SettingsPayload struct {
	Font      *string `json:"font,omitempty"`
	Theme     *string `json:"theme,omitempty"`
	TextColor *string `json:"textColor,omitempty"`
	Size      *int    `json:"size,omitempty"`
}

// BackgroundPayload carries a background image as a data URL. An empty
// DataURL clears the background.
type BackgroundPayload struct {
	DataURL string `json:"dataUrl"`
}

// envelope is the wire form: a type tag plus the kind-specific payload.
type envelope struct {
	Type Kind            `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ShowVerse builds a SHOW_VERSE message.
func ShowVerse(text, reference string) Message {
	return Message{Kind: KindShowVerse, Verse: &VersePayload{Text: text, Reference: reference}}
}

// ShowNote builds a SHOW_NOTE message.
func ShowNote(text string, liveTyping bool) Message {
	return Message{Kind: KindShowNote, Note: &NotePayload{Text: text, IsLiveTyping: liveTyping}}
}

// ShowSong builds a SHOW_SONG message for one stanza.
func ShowSong(p SongPayload) Message {
	return Message{Kind: KindShowSong, Song: &p}
}

// ShowSlide builds a SHOW_SLIDE message.
func ShowSlide(p SlidePayload) Message {
	return Message{Kind: KindShowSlide, Slide: &p}
}

// Hide builds a HIDE_VERSE message, which clears whatever is shown.
func Hide() Message {
	return Message{Kind: KindHideVerse}
}

// UpdateSettings builds an UPDATE_SETTINGS message.
func UpdateSettings(p SettingsPayload) Message {
	return Message{Kind: KindUpdateSettings, Settings: &p}
}

// SetBackground builds a SET_BACKGROUND message.
func SetBackground(dataURL string) Message {
	return Message{Kind: KindSetBackground, Background: &BackgroundPayload{DataURL: dataURL}}
}

// payload returns the populated payload for the message's kind, or nil for
// payload-free kinds.
func (m Message) payload() any {
	switch m.Kind {
	case KindShowVerse:
		return m.Verse
	case KindShowNote:
		return m.Note
	case KindShowSong:
		return m.Song
	case KindShowSlide:
		return m.Slide
	case KindUpdateSettings:
		return m.Settings
	case KindSetBackground:
		return m.Background
	}
	return nil
}

// Validate checks that the message's payload matches its kind.
func (m Message) Validate() error {
	switch m.Kind {
	case KindHideVerse:
		return nil
	case KindShowVerse, KindShowNote, KindShowSong, KindShowSlide,
		KindUpdateSettings, KindSetBackground:
		if isNilPayload(m.payload()) {
			return lumerr.NewValidation("payload", fmt.Sprintf("%s message has no payload", m.Kind))
		}
		if m.Kind == KindShowSlide {
			s := m.Slide
			if (s.ImageData == "") == (s.ImageURL == "") {
				return lumerr.NewValidation("slide", "exactly one of imageData or imageUrl must be set")
			}
		}
		return nil
	default:
		return lumerr.NewValidation("type", fmt.Sprintf("unknown message kind %q", m.Kind))
	}
}

func isNilPayload(p any) bool {
	switch v := p.(type) {
	case *VersePayload:
		return v == nil
	case *NotePayload:
		return v == nil
	case *SongPayload:
		return v == nil
	case *SlidePayload:
		return v == nil
	case *SettingsPayload:
		return v == nil
	case *BackgroundPayload:
		return v == nil
	}
	return p == nil
}

// Encode serializes a message into its wire envelope.
func Encode(m Message) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	env := envelope{Type: m.Kind}
	if p := m.payload(); !isNilPayload(p) {
		data, err := json.Marshal(p)
		if err != nil {
			return nil, lumerr.Wrap(err, "encoding message payload")
		}
		env.Data = data
	}
	return json.Marshal(env)
}

// Decode parses a wire envelope back into a message. Unknown kinds return
// ErrUnsupported so network boundaries can skip them; malformed JSON is a
// validation error.
func Decode(raw []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Message{}, lumerr.NewValidation("message", "malformed envelope: "+err.Error())
	}

	m := Message{Kind: env.Type}
	var target any
	switch env.Type {
	case KindShowVerse:
		m.Verse = &VersePayload{}
		target = m.Verse
	case KindShowNote:
		m.Note = &NotePayload{}
		target = m.Note
	case KindShowSong:
		m.Song = &SongPayload{}
		target = m.Song
	case KindShowSlide:
		m.Slide = &SlidePayload{}
		target = m.Slide
	case KindHideVerse:
		return m, nil
	case KindUpdateSettings:
		m.Settings = &SettingsPayload{}
		target = m.Settings
	case KindSetBackground:
		m.Background = &BackgroundPayload{}
		target = m.Background
	default:
		return Message{}, lumerr.Wrapf(lumerr.ErrUnsupported, "message kind %q", env.Type)
	}

	if len(env.Data) == 0 {
		return Message{}, lumerr.NewValidation("data", fmt.Sprintf("%s message has no payload", env.Type))
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return Message{}, lumerr.NewValidation("data", "malformed payload: "+err.Error())
	}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}
