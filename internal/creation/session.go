package creation

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lawnchairsociety/dungeonkit/internal/character"
	"github.com/lawnchairsociety/dungeonkit/internal/help"
	"github.com/lawnchairsociety/dungeonkit/internal/pointbuy"
	"github.com/lawnchairsociety/dungeonkit/internal/prefs"
	"github.com/lawnchairsociety/dungeonkit/internal/stats"
)

// Command is one parsed input line.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits a line into a lowercased name and its arguments.
func ParseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Name: "", Args: []string{}}
	}

	return &Command{
		Name: strings.ToLower(parts[0]),
		Args: parts[1:],
	}
}

// Session drives a Manager from text commands. It is not safe for
// concurrent use; each connection gets its own.
type Session struct {
	m     *Manager
	store prefs.Store
	help  *help.Help
	scene string
	quit  bool
}

// NewSession binds a manager to the store Finalize writes to.
func NewSession(m *Manager, store prefs.Store) *Session {
	return &Session{m: m, store: store, help: help.Default()}
}

// SetHelp replaces the built-in help topics.
func (s *Session) SetHelp(h *help.Help) {
	if h != nil {
		s.help = h
	}
}

// Manager returns the session's manager.
func (s *Session) Manager() *Manager {
	return s.m
}

// Done reports whether the session has finished, by finalizing or quitting.
func (s *Session) Done() bool {
	return s.quit || s.scene != ""
}

// Scene returns the scene chosen by a successful finalize, or "".
func (s *Session) Scene() string {
	return s.scene
}

// Greeting is shown when a session starts.
func (s *Session) Greeting() string {
	return "Create your character. Type 'help' for commands.\n" + s.show()
}

// Execute runs one line and returns the reply text.
func (s *Session) Execute(line string) string {
	if s.Done() {
		return "This session is finished."
	}

	c := ParseCommand(line)
	if p, ok := character.PartByName(c.Name); ok {
		return s.changeAppearance(p, c.Args)
	}

	switch c.Name {
	case "":
		return ""
	case "help", "?":
		return s.help.Text(strings.Join(c.Args, " "))
	case "show", "sheet":
		return s.show()
	case "name":
		return s.setName(c.Args)
	case "lineage", "calling", "background":
		return s.selectOption(c.Name, c.Args)
	case "options", "list":
		return s.listOptions()
	case "inc", "increase", "+":
		return s.adjust(c.Args, true)
	case "dec", "decrease", "-":
		return s.adjust(c.Args, false)
	case "look", "appearance":
		if len(c.Args) == 0 {
			return "Usage: look <part> <+n|-n>"
		}
		p, ok := character.ParsePart(c.Args[0])
		if !ok {
			return fmt.Sprintf("Unknown appearance part: %s", c.Args[0])
		}
		return s.changeAppearance(p, c.Args[1:])
	case "costs":
		return pointbuy.CostTable()
	case "random", "randomize":
		if err := s.m.Randomize(); err != nil {
			return "Randomized, but points were left unspent.\n" + s.show()
		}
		return "Randomized.\n" + s.show()
	case "done", "finalize":
		return s.finalize()
	case "quit", "exit":
		s.quit = true
		return "Character creation abandoned."
	default:
		return fmt.Sprintf("Unknown command: %s. Type 'help' for commands.", c.Name)
	}
}

func (s *Session) setName(args []string) string {
	if len(args) == 0 {
		return "Usage: name <character name>"
	}
	s.m.SetName(strings.Join(args, " "))
	return fmt.Sprintf("Name set to %s.", s.m.Data().Name)
}

func (s *Session) selectOption(kind string, args []string) string {
	if len(args) == 0 {
		return fmt.Sprintf("Usage: %s <choice>", kind)
	}
	arg := strings.Join(args, " ")

	var err error
	var label string
	switch kind {
	case "lineage":
		var l character.Lineage
		if l, err = character.ParseLineage(arg); err == nil {
			err = s.m.SetLineage(int(l))
			label = l.String()
		}
	case "calling":
		var c character.Calling
		if c, err = character.ParseCalling(arg); err == nil {
			err = s.m.SetCalling(int(c))
			label = c.String()
		}
	case "background":
		var b character.Background
		if b, err = character.ParseBackground(arg); err == nil {
			err = s.m.SetBackground(int(b))
			label = b.String()
		}
	}
	if err != nil {
		return fmt.Sprintf("%s. Type 'options' to see the choices.", capitalize(err.Error()))
	}
	return fmt.Sprintf("%s set to %s.", capitalize(kind), label)
}

func (s *Session) adjust(args []string, up bool) string {
	if len(args) == 0 {
		return "Usage: inc|dec <ability>"
	}
	a, err := stats.ParseAbility(args[0])
	if err != nil {
		return fmt.Sprintf("Unknown ability: %s", args[0])
	}

	if up {
		if !s.m.CanIncreaseAttribute(a) {
			return fmt.Sprintf("Cannot raise %s: %d points left, next step costs %d.",
				a.Abbrev(), s.m.Remaining(), pointbuy.Cost(s.m.Data().Scores.Get(a)))
		}
		s.m.IncreaseAttribute(a)
	} else {
		if !s.m.CanDecreaseAttribute(a) {
			return fmt.Sprintf("%s is already at the minimum.", a.Abbrev())
		}
		s.m.DecreaseAttribute(a)
	}
	d := s.m.Data()
	return fmt.Sprintf("%s is now %d. Points left: %d.", a.Abbrev(), d.Scores.Get(a), s.m.Remaining())
}

func (s *Session) changeAppearance(p character.Part, args []string) string {
	dir := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Sprintf("Expected a step like +1 or -1, got %s.", args[0])
		}
		dir = n
	}
	s.m.ChangeAppearance(p, dir)
	d := s.m.Data()
	return fmt.Sprintf("%s: option %d of %d.", p, d.Appearance[p]+1, s.m.Options()[p])
}

func (s *Session) finalize() string {
	scene, err := s.m.Finalize(s.store)
	if errors.Is(err, ErrNameRejected) {
		return fmt.Sprintf("%s Choose another with 'name'.", strings.TrimPrefix(err.Error(), ErrNameRejected.Error()+": "))
	}
	if err != nil {
		return fmt.Sprintf("Could not save your character: %v", err)
	}
	s.scene = scene
	return fmt.Sprintf("%s is ready. Loading %s.", s.m.Data().Name, scene)
}

func (s *Session) show() string {
	d := s.m.Data()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", d.Name)
	fmt.Fprintf(&sb, "Lineage: %s  Calling: %s  Background: %s\n", d.Lineage, d.Calling, d.Background)
	fmt.Fprintf(&sb, "%s  (points left: %d)\n", d.Scores.String(), s.m.Remaining())
	fmt.Fprintf(&sb, "HP %d  AC %d\n", d.MaxHealth(), d.ArmorClass())
	opts := s.m.Options()
	for _, p := range character.Parts() {
		fmt.Fprintf(&sb, "  %-15s %d/%d\n", p.String()+":", d.Appearance[p]+1, opts[p])
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (s *Session) listOptions() string {
	var sb strings.Builder
	section := func(title string, opts []character.Option) {
		fmt.Fprintf(&sb, "%s:\n", title)
		for i, o := range opts {
			fmt.Fprintf(&sb, "  %d. %-10s %s\n", i, o.Label, o.Description)
		}
	}
	section("Lineages", character.Lineages())
	section("Callings", character.Callings())
	section("Backgrounds", character.Backgrounds())
	return strings.TrimRight(sb.String(), "\n")
}

// Run reads commands from r until the session is done, r is exhausted or
// ctx is cancelled, writing each reply to w.
func (s *Session) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	if _, err := fmt.Fprintln(w, s.Greeting()); err != nil {
		return err
	}
	scanner := bufio.NewScanner(r)
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "> "); err != nil {
			return err
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if reply := s.Execute(scanner.Text()); reply != "" {
			if _, err := fmt.Fprintln(w, reply); err != nil {
				return err
			}
		}
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
