package report

import (
	"strconv"
	"strings"

	"github.com/edgard/tgidbot/internal/estimator"
	"github.com/edgard/tgidbot/internal/inbound"
)

// Block headers.
const (
	HeaderYou           = "👤 You"
	HeaderForwardedFrom = "👤 Forwarded from"
	HeaderChat          = "💬 Chat"
	HeaderMessage       = "📃 Message"
)

// HTTPDate is the layout used for forward timestamps.
const HTTPDate = "Mon, 02 Jan 2006 15:04:05 GMT"

// Formatter builds report text for inbound messages.
type Formatter struct {
	estimator *estimator.Estimator
}

// NewFormatter returns a Formatter that estimates account age with e.
func NewFormatter(e *estimator.Estimator) *Formatter {
	return &Formatter{estimator: e}
}

// Format renders the full report for m: the sender, the chat and, for
// forwarded messages, the original sender and forward time.
func (f *Formatter) Format(m *inbound.Message) string {
	var blocks []Block

	if m.From != nil {
		blocks = append(blocks, f.UserBlock(HeaderYou, m.From))
	}
	blocks = append(blocks, ChatBlock(m.Chat))

	if fwd := m.Forward; fwd != nil {
		if b, ok := f.originBlock(fwd); ok {
			blocks = append(blocks, b)
		}
		msg := Block{Header: HeaderMessage}
		if !fwd.Date.IsZero() {
			msg.Add("forward_date", fwd.Date.UTC().Format(HTTPDate))
		}
		blocks = append(blocks, msg)
	}

	rendered := make([]string, len(blocks))
	for i, b := range blocks {
		rendered[i] = b.Render()
	}
	return strings.Join(rendered, "\n")
}

// UserBlock describes u under the given header, ending with the estimated
// account creation period.
func (f *Formatter) UserBlock(header string, u *inbound.User) Block {
	b := Block{Header: header}
	b.Add("id", strconv.FormatInt(u.ID, 10))
	b.Add("is_bot", strconv.FormatBool(u.IsBot))
	b.Add("first_name", u.FirstName)
	b.AddOptional("last_name", u.LastName)
	b.AddOptional("username", u.Username)
	if u.LanguageCode != "" {
		b.Add("language_code", u.LanguageCode+" (-)")
	}
	b.Add("created", CreatedPhrase(f.estimator.Estimate(u.ID)))
	return b
}

// ChatBlock describes c. Title and username appear only when set.
func ChatBlock(c inbound.Chat) Block {
	b := Block{Header: HeaderChat}
	b.Add("id", strconv.FormatInt(c.ID, 10))
	b.Add("type", c.Type)
	b.AddOptional("title", c.Title)
	b.AddOptional("username", c.Username)
	return b
}

func (f *Formatter) originBlock(o *inbound.ForwardOrigin) (Block, bool) {
	switch o.Kind {
	case inbound.OriginUser:
		if o.User == nil {
			return Block{}, false
		}
		return f.UserBlock(HeaderForwardedFrom, o.User), true
	case inbound.OriginHiddenUser:
		b := Block{Header: HeaderForwardedFrom}
		b.Add("sender_name", o.SenderName)
		return b, true
	case inbound.OriginChat, inbound.OriginChannel:
		if o.Chat == nil {
			return Block{}, false
		}
		title := o.Chat.Title
		if title == "" {
			title = "Unknown"
		}
		b := Block{Header: HeaderForwardedFrom}
		b.Add("chat", title)
		b.Add("type", o.Chat.Type)
		b.Add("id", strconv.FormatInt(o.Chat.ID, 10))
		return b, true
	}
	return Block{}, false
}

// CreatedPhrase renders an estimate as shown after "created:", e.g.
// "approx 3/2015 (?)". The "(?)" marks the value as a guess.
func CreatedPhrase(r estimator.Result) string {
	return string(r.Category) + " " + r.Period + " (?)"
}
