// ABOUTME: Greeter card combining an hour-of-day greeting with the recognized user's name.
// ABOUTME: The name is read from a shared cell on every tick, so presence updates show next refresh.
package cards

import (
	"context"
	"fmt"
	"time"

	"github.com/glimt-dev/glimt/card"
)

// GreeterCard displays a time-appropriate greeting. The userName provider is
// typically App.UserName, which resolves the presence-detected name or the
// configured default.
type GreeterCard struct {
	card.Base
	userName func() string
	now      func() time.Time
}

// NewGreeterCard creates the greeter with its default placement.
func NewGreeterCard(userName func() string) *GreeterCard {
	return &GreeterCard{
		Base: card.NewBase(card.Config{
			Name:           "Greeter",
			Position:       card.MiddleCenter,
			Enabled:        true,
			UpdateInterval: 5 * time.Minute,
			Width:          35,
			Height:         8,
			ShowBorder:     false,
			ShowTitle:      false,
			TextColor:      "214",
			Align:          "center",
		}),
		userName: userName,
		now:      time.Now,
	}
}

func (c *GreeterCard) Compose() string {
	return c.render()
}

func (c *GreeterCard) Update(ctx context.Context) (string, error) {
	return c.render(), nil
}

func (c *GreeterCard) render() string {
	return fmt.Sprintf("%s, %s!", greetingWord(c.now().Hour()), c.userName())
}

// greetingWord buckets the hour of day into a greeting.
func greetingWord(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	case hour < 22:
		return "Good evening"
	default:
		return "Good night"
	}
}
