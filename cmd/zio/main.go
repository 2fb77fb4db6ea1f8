// zio is a small interactive inspector for seekable byte streams.
//
// Usage:
//
//	zio [flags] <file>     Open a file-backed stream
//	zio [flags] mem        Open a scratch memory-backed stream
//
// Flags:
//
//	-r, --read-only    Open the file read-only (file streams)
//	    --const        Make the memory buffer read-only (memory streams)
//	-s, --size         Size of the scratch memory buffer in bytes (default 1024)
//	-c, --config       Path to a config file (HuJSON)
//
// Commands (in REPL):
//
//	read [n]              Read up to n bytes at the current position
//	write <text>          Write text at the current position
//	seek <off> [whence]   Seek; whence is set, cur or end (default set)
//	tell                  Show the current position
//	size                  Show the total stream size
//	hex [n]               Hex dump up to n bytes at the current position
//	info                  Show stream details
//	help                  Show this help
//	exit / quit / q       Exit
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/zkit-go/zkit/internal/config"
	"github.com/zkit-go/zkit/pkg/zfs"
	"github.com/zkit-go/zkit/pkg/zio"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := flag.NewFlagSet("zio", flag.ContinueOnError)

	readOnly := flags.BoolP("read-only", "r", false, "open the file read-only")
	constMem := flags.Bool("const", false, "make the memory buffer read-only")
	memSize := flags.IntP("size", "s", 1024, "size of the scratch memory buffer in bytes")
	configPath := flags.StringP("config", "c", "", "path to a config file")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  zio [flags] <file>   Open a file-backed stream\n")
		fmt.Fprintf(os.Stderr, "  zio [flags] mem      Open a scratch memory-backed stream\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}

		return err
	}

	if flags.NArg() < 1 {
		flags.Usage()

		return errors.New("missing file path or 'mem'")
	}

	cfg, err := config.Load(*configPath, environ())
	if err != nil {
		return err
	}

	if cfg.ReadOnly {
		*readOnly = true
	}

	target := flags.Arg(0)

	repl := &REPL{
		bufferSize:  cfg.BufferSize,
		historyFile: cfg.HistoryFile,
	}

	if target == "mem" {
		if *memSize <= 0 {
			return fmt.Errorf("invalid --size %d", *memSize)
		}

		buf := make([]byte, *memSize)

		var h zio.Handle
		if *constMem {
			h, err = zio.OpenConstMemory(buf)
		} else {
			h, err = zio.OpenMemory(buf)
		}

		if err != nil {
			return fmt.Errorf("opening memory stream: %w", err)
		}

		repl.handle = h
		repl.target = fmt.Sprintf("memory (%d bytes, const=%v)", *memSize, *constMem)
	} else {
		mode := zio.ModeRead
		if !*readOnly {
			mode |= zio.ModeWrite

			// Writable file sessions take an advisory lock so two zio
			// sessions don't trample the same file.
			lock, err := zfs.Lock(target)
			if err != nil {
				return fmt.Errorf("locking %s: %w", target, err)
			}
			defer lock.Close()
		}

		h, err := zio.OpenFile(target, mode)
		if err != nil {
			return err
		}

		repl.handle = h
		repl.target = fmt.Sprintf("file %s (read-only=%v)", target, *readOnly)
	}

	defer repl.handle.Close()

	return repl.Run()
}

// environ returns the process environment as a map.
func environ() map[string]string {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	return env
}

// REPL is the interactive command loop.
type REPL struct {
	handle      zio.Handle
	target      string
	bufferSize  int
	historyFile string
	liner       *liner.State
}

// history returns the path to the history file.
func (r *REPL) history() string {
	if r.historyFile != "" {
		return r.historyFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".zio_history")
}

// Run starts the REPL loop.
func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(r.history()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("zio - stream inspector: %s\n", r.target)
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("zio> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")

			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp()

		case "read":
			r.cmdRead(args)

		case "write":
			// Keep the raw remainder so spaces survive.
			r.cmdWrite(strings.TrimSpace(strings.TrimPrefix(line, parts[0])))

		case "seek":
			r.cmdSeek(args)

		case "tell":
			r.cmdTell()

		case "size":
			r.cmdSize()

		case "hex":
			r.cmdHex(args)

		case "info":
			r.cmdInfo()

		case "clear", "cls":
			fmt.Print("\033[H\033[2J")

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

// saveHistory persists command history to disk.
func (r *REPL) saveHistory() {
	if path := r.history(); path != "" {
		if f, err := os.Create(path); err == nil {
			r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

// completer provides tab completion for commands.
func (r *REPL) completer(line string) []string {
	commands := []string{
		"read", "write", "seek", "tell", "size",
		"hex", "info", "clear", "cls",
		"help", "exit", "quit", "q",
	}

	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func (r *REPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  read [n]              Read up to n bytes at the current position")
	fmt.Println("  write <text>          Write text at the current position")
	fmt.Println("  seek <off> [whence]   Seek; whence is set, cur or end (default set)")
	fmt.Println("  tell                  Show the current position")
	fmt.Println("  size                  Show the total stream size")
	fmt.Println("  hex [n]               Hex dump up to n bytes at the current position")
	fmt.Println("  info                  Show stream details")
	fmt.Println("  clear                 Clear the screen")
	fmt.Println("  exit / quit / q       Exit")
}

// readChunk reads up to n bytes from the handle at the current position.
func (r *REPL) readChunk(args []string) ([]byte, bool) {
	n := r.bufferSize

	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			fmt.Printf("invalid count: %s\n", args[0])

			return nil, false
		}

		n = v
	}

	buf := make([]byte, n)

	count, err := r.handle.Read(buf)
	if err != nil && err != io.EOF {
		fmt.Printf("read failed: %v\n", err)

		return nil, false
	}

	if count == 0 {
		fmt.Println("(end of stream)")

		return nil, false
	}

	return buf[:count], true
}

func (r *REPL) cmdRead(args []string) {
	data, ok := r.readChunk(args)
	if !ok {
		return
	}

	fmt.Printf("%d bytes: %q\n", len(data), data)
}

func (r *REPL) cmdHex(args []string) {
	data, ok := r.readChunk(args)
	if !ok {
		return
	}

	fmt.Print(hex.Dump(data))
}

func (r *REPL) cmdWrite(text string) {
	if text == "" {
		fmt.Println("usage: write <text>")

		return
	}

	n, err := r.handle.Write([]byte(text))
	if err != nil {
		fmt.Printf("write failed: %v\n", err)

		return
	}

	if n < len(text) {
		fmt.Printf("short write: %d of %d bytes (buffer boundary)\n", n, len(text))

		return
	}

	fmt.Printf("wrote %d bytes\n", n)
}

func (r *REPL) cmdSeek(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: seek <off> [set|cur|end]")

		return
	}

	off, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Printf("invalid offset: %s\n", args[0])

		return
	}

	whence := io.SeekStart

	if len(args) > 1 {
		switch strings.ToLower(args[1]) {
		case "set", "start":
			whence = io.SeekStart
		case "cur", "current":
			whence = io.SeekCurrent
		case "end":
			whence = io.SeekEnd
		default:
			fmt.Printf("invalid whence: %s (use set, cur or end)\n", args[1])

			return
		}
	}

	pos, err := r.handle.Seek(off, whence)
	if err != nil {
		fmt.Printf("seek failed: %v\n", err)

		return
	}

	fmt.Printf("position: %d\n", pos)
}

func (r *REPL) cmdTell() {
	pos, err := r.handle.Tell()
	if err != nil {
		fmt.Printf("tell failed: %v\n", err)

		return
	}

	fmt.Printf("position: %d\n", pos)
}

func (r *REPL) cmdSize() {
	size, err := r.handle.Size()
	if err != nil {
		fmt.Printf("size failed: %v\n", err)

		return
	}

	fmt.Printf("size: %d bytes\n", size)
}

func (r *REPL) cmdInfo() {
	fmt.Printf("Stream: %s\n", r.target)

	if size, err := r.handle.Size(); err == nil {
		fmt.Printf("  Size:       %d bytes\n", size)
	}

	if pos, err := r.handle.Tell(); err == nil {
		fmt.Printf("  Position:   %d\n", pos)
	}

	if lastErr := r.handle.LastError(); lastErr != nil {
		fmt.Printf("  Last error: %v\n", lastErr)
	}
}
