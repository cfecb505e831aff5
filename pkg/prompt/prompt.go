package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rodaine/table"
)

var ErrNoOptions = errors.New("nothing to choose from")

// Prompter is a line oriented terminal dialogue. Every read returns io.EOF once the input is closed.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (p *Prompter) Writer() io.Writer {
	return p.out
}

func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// Ask reads one trimmed line of free text
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	return p.readLine()
}

// AskDefault is Ask, returning fallback when the answer is blank
func (p *Prompter) AskDefault(label string, fallback string) (string, error) {
	if fallback == "" {
		return p.Ask(label)
	}

	answer, err := p.Ask(fmt.Sprintf("%s [%s]", label, fallback))
	if err != nil {
		return "", err
	}
	if answer == "" {
		return fallback, nil
	}

	return answer, nil
}

// Choose lists the options numbered from 1 and returns the 0 based index picked
func (p *Prompter) Choose(label string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, ErrNoOptions
	}

	for {
		fmt.Fprintln(p.out, label)
		for i, option := range options {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, option)
		}

		answer, err := p.Ask("Choice")
		if err != nil {
			return -1, err
		}

		choice, err := strconv.Atoi(answer)
		if err == nil && choice >= 1 && choice <= len(options) {
			return choice - 1, nil
		}

		fmt.Fprintf(p.out, "Please enter a number between 1 and %d\n", len(options))
	}
}

// Confirm asks a yes/no question, anything other than y or yes is a no
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.Ask(question + " [y/N]")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *Prompter) Table(headers []any, rows [][]any) {
	tbl := table.New(headers...).WithWriter(p.out)
	for _, row := range rows {
		tbl.AddRow(row...)
	}

	tbl.Print()
}
