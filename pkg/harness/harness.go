// Package harness speaks the line protocol of the Light Riders game engine
// over a reader/writer pair and asks a game.AI for each move.
package harness

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/montplusa/light-riders-bot/pkg/game"
	"github.com/montplusa/light-riders-bot/pkg/game/debug"
)

// Fallback is sent when the bot cannot decide a move.
const Fallback = game.Up

var ErrMalformed = errors.New("malformed command")

// Settings collects the "settings ..." lines sent before the game.
type Settings struct {
	Timebank    int
	TimePerMove int
	PlayerNames []string
	YourBot     string
	YourBotID   int
	FieldWidth  int
	FieldHeight int
	MaxRounds   int
}

// Bot holds the protocol state between lines.
type Bot struct {
	ai       game.AI
	out      io.Writer
	Settings Settings
	Round    int
	Field    string
}

func New(ai game.AI, out io.Writer) *Bot {
	return &Bot{ai: ai, out: out}
}

// Run reads commands from r until EOF and writes moves to w.
func Run(r io.Reader, w io.Writer, ai game.AI) error {
	b := New(ai, w)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		if err := b.Handle(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

// Turn is what the AI sees for the current round. The opponent id is 1 - ours.
func (b *Bot) Turn() game.Turn {
	return game.Turn{
		FieldData:   b.Field,
		FieldHeight: b.Settings.FieldHeight,
		FieldWidth:  b.Settings.FieldWidth,
		MyBotID:     strconv.Itoa(b.Settings.YourBotID),
		OtherBotID:  strconv.Itoa(1 - b.Settings.YourBotID),
		Round:       b.Round,
	}
}

// Handle processes one line. Unknown commands are ignored.
func (b *Bot) Handle(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	switch parts[0] {
	case "settings":
		if len(parts) < 3 {
			return fmt.Errorf("%q: %w", line, ErrMalformed)
		}
		return b.setting(parts[1], parts[2])
	case "update":
		if len(parts) < 4 || parts[1] != "game" {
			return fmt.Errorf("%q: %w", line, ErrMalformed)
		}
		return b.update(parts[2], parts[3])
	case "action":
		if len(parts) < 2 || parts[1] != "move" {
			return fmt.Errorf("%q: %w", line, ErrMalformed)
		}
		return b.move()
	default:
		debug.Log("harness: ignoring %q", line)
	}
	return nil
}

func (b *Bot) setting(key, value string) error {
	atoi := func(dst *int) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("settings %s %q: %w", key, value, err)
		}
		*dst = n
		return nil
	}
	s := &b.Settings
	switch key {
	case "timebank":
		return atoi(&s.Timebank)
	case "time_per_move":
		return atoi(&s.TimePerMove)
	case "player_names":
		s.PlayerNames = strings.Split(value, ",")
	case "your_bot":
		s.YourBot = value
	case "your_botid":
		return atoi(&s.YourBotID)
	case "field_width":
		return atoi(&s.FieldWidth)
	case "field_height":
		return atoi(&s.FieldHeight)
	case "max_rounds":
		return atoi(&s.MaxRounds)
	default:
		debug.Log("harness: unknown setting %s", key)
	}
	return nil
}

func (b *Bot) update(key, value string) error {
	switch key {
	case "round":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("update game round %q: %w", value, err)
		}
		b.Round = n
	case "field":
		b.Field = value
	default:
		debug.Log("harness: unknown update %s", key)
	}
	return nil
}

// move asks the AI and always answers, falling back to Fallback on error.
func (b *Bot) move() error {
	a, err := b.ai.SelectMove(b.Turn())
	if err != nil {
		debug.Log("harness: round %d: %v, fallback %s", b.Round, err, Fallback)
		a = Fallback
	}
	_, err = fmt.Fprintln(b.out, a)
	return err
}
