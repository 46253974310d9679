package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/internal/presentation/graph"
	"github.com/aretw0/rewind/internal/presentation/tui"
	"github.com/aretw0/rewind/pkg/books"
)

// errQuit ends the shell loop.
var errQuit = errors.New("quit")

const shellHelp = `Commands:
  print <source>         print a new book from the library
  edit <id> <text>       replace the text of a book
  append <id> <text>     append text to a book
  burn <id>              delete a book
  ls                     list printed books
  show <id>              render a book
  sources                list library sources
  record                 checkpoint every flagged book
  undo | redo            walk the history
  history [mermaid]      show the undo/redo history
  help                   show this help
  quit                   leave the shell
`

// Shell is a line-oriented REPL over a desk and its history.
type Shell struct {
	desk   *books.Desk
	engine *rewind.Engine
	out    io.Writer
	render func(string) (string, error)
	prompt bool
}

// ShellOption configures the Shell.
type ShellOption func(*Shell)

// WithRenderer sets the markdown renderer used by "show".
func WithRenderer(render func(string) (string, error)) ShellOption {
	return func(s *Shell) {
		s.render = render
	}
}

// WithPrompt enables the "> " prompt, for interactive terminals.
func WithPrompt(enabled bool) ShellOption {
	return func(s *Shell) {
		s.prompt = enabled
	}
}

// NewShell creates a shell writing to out.
func NewShell(desk *books.Desk, engine *rewind.Engine, out io.Writer, opts ...ShellOption) *Shell {
	s := &Shell{
		desk:   desk,
		engine: engine,
		out:    out,
		render: func(md string) (string, error) { return md, nil },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads commands from in until quit, EOF or ctx cancellation.
// Command errors are reported and the loop continues.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		if s.prompt {
			fmt.Fprint(s.out, "> ")
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return err
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.Exec(ctx, sc.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

// Exec runs a single command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "print":
		if len(args) != 1 {
			return errors.New("usage: print <source>")
		}
		b, err := s.desk.Print(args[0])
		if err != nil {
			return err
		}
		printSystemMessage(s.out, "Printed book %d from '%s'.", b.ID(), b.Source())

	case "edit", "append":
		if len(args) < 1 {
			return fmt.Errorf("usage: %s <id> <text>", cmd)
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		text := restOf(line, 2)
		if cmd == "edit" {
			err = s.desk.Edit(id, text)
		} else {
			err = s.desk.Append(id, text)
		}
		if err != nil {
			return err
		}
		printSystemMessage(s.out, "Book %d updated.", id)

	case "burn":
		id, err := oneID(cmd, args)
		if err != nil {
			return err
		}
		if err := s.desk.Burn(id); err != nil {
			return err
		}
		printSystemMessage(s.out, "Book %d burned.", id)

	case "ls":
		s.list()

	case "show":
		id, err := oneID(cmd, args)
		if err != nil {
			return err
		}
		b, ok := s.desk.Factory().Book(id)
		if !ok {
			return fmt.Errorf("book %d not found", id)
		}
		out, err := s.render(tui.BookMarkdown(b.SaveContent()))
		if err != nil {
			return err
		}
		fmt.Fprint(s.out, out)

	case "sources":
		sources, err := s.desk.Factory().Library().Sources(ctx)
		if err != nil {
			return err
		}
		for _, src := range sources {
			fmt.Fprintln(s.out, src)
		}

	case "record":
		if err := s.engine.Record(); err != nil {
			return err
		}
		s.status("Recorded")

	case "undo":
		if !s.engine.CanUndo() {
			printSystemMessage(s.out, "Nothing to undo.")
			return nil
		}
		if err := s.engine.PerformUndo(); err != nil {
			return err
		}
		s.status("Undone")

	case "redo":
		if !s.engine.CanRedo() {
			printSystemMessage(s.out, "Nothing to redo.")
			return nil
		}
		if err := s.engine.PerformRedo(); err != nil {
			return err
		}
		s.status("Redone")

	case "history":
		undo, redo := s.engine.History()
		if len(args) > 0 && args[0] == "mermaid" {
			fmt.Fprint(s.out, graph.GenerateMermaid(undo, redo))
			return nil
		}
		s.history(undo, redo)

	case "help", "?":
		fmt.Fprint(s.out, shellHelp)

	case "quit", "exit", "q":
		return errQuit

	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
	return nil
}

func (s *Shell) list() {
	printed := s.desk.Factory().Books()
	if len(printed) == 0 {
		printSystemMessage(s.out, "No books printed.")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSOURCE\tTEXT")
	for _, b := range printed {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", b.ID(), b.Source(), preview(b.Text, 40))
	}
	tw.Flush()
}

func (s *Shell) history(undo, redo []rewind.Checkpoint) {
	fmt.Fprintf(s.out, "undo (%d):\n", len(undo))
	for i := len(undo) - 1; i >= 0; i-- {
		fmt.Fprintf(s.out, "  %s\n", graph.Label(undo[i]))
	}
	fmt.Fprintf(s.out, "redo (%d):\n", len(redo))
	for i := len(redo) - 1; i >= 0; i-- {
		fmt.Fprintf(s.out, "  %s\n", graph.Label(redo[i]))
	}
}

func (s *Shell) status(verb string) {
	printSystemMessage(s.out, "%s (undo %d, redo %d).", verb, s.engine.UndoCount(), s.engine.RedoCount())
}

func oneID(cmd string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s <id>", cmd)
	}
	return parseID(args[0])
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid book id %q", s)
	}
	return id, nil
}

// restOf returns line after its first n whitespace-separated fields, spacing preserved.
func restOf(line string, n int) string {
	rest := strings.TrimLeft(line, " \t")
	for range n {
		i := strings.IndexAny(rest, " \t")
		if i < 0 {
			return ""
		}
		rest = strings.TrimLeft(rest[i:], " \t")
	}
	return rest
}

func preview(text string, max int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if r := []rune(text); len(r) > max {
		return string(r[:max-3]) + "..."
	}
	return text
}
