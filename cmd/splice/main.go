//go:build linux

// Command splice moves bytes between two descriptors with splice(2).
//
//	splice -in data.bin -n 1048576 | consumer
//	producer | splice -out data.bin -n 4096 -flags move
//	splice -in a.bin -out b.bin -n 65536      # bridged, neither side is a pipe
//
// Either -in or -out should be a pipe (stdin and stdout default). When the
// kernel refuses because neither is, or -bridge is set, the transfer goes
// through a private pipe instead.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/xDarkicex/splice"
	"github.com/xDarkicex/splice/internal/config"
	"github.com/xDarkicex/splice/internal/logging"
)

func main() {
	cfg := config.LoadOrDefault()

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger = logging.NewDefault()
	}

	err = run(os.Args[1:], cfg, os.Stdin, os.Stdout, os.Stderr, logger)
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		logger.Error("splice failed", zap.Error(err))
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run parses args and performs one transfer. cfg supplies the defaults
// that flags override.
func run(args []string, cfg *config.Config, stdin, stdout *os.File, stderr io.Writer, logger *zap.Logger) error {
	fs := flag.NewFlagSet("splice", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inPath := fs.String("in", "-", "source path (- for stdin)")
	outPath := fs.String("out", "-", "destination path (- for stdout)")
	length := fs.Int("n", -1, "number of bytes to move (required)")
	flagList := fs.String("flags", cfg.Transfer.Flags, "comma-separated splice flags (move,more,gift,nonblock)")
	bridge := fs.Bool("bridge", cfg.Transfer.Bridge, "always go through an intermediate pipe")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *length < 0 {
		fs.Usage()
		return fmt.Errorf("-n is required and must be non-negative")
	}

	flags, err := splice.ParseFlags(*flagList)
	if err != nil {
		return err
	}

	src, closeSrc, err := openSource(*inPath, stdin)
	if err != nil {
		return err
	}
	defer closeSrc()

	dst, closeDst, err := openDestination(*outPath, stdout)
	if err != nil {
		return err
	}
	defer closeDst()

	srcFD, err := splice.FD(src)
	if err != nil {
		return fmt.Errorf("source descriptor: %w", err)
	}
	dstFD, err := splice.FD(dst)
	if err != nil {
		return fmt.Errorf("destination descriptor: %w", err)
	}

	log := logger.With(
		zap.String("in", *inPath),
		zap.String("out", *outPath),
		zap.Int("bytes", *length),
		zap.Int("flags", flags),
	)

	mode, err := transfer(srcFD, dstFD, *length, flags, *bridge, log)
	if err != nil {
		return err
	}

	log.Info("transfer complete", zap.String("mode", mode))
	return nil
}

// transfer splices directly unless bridge is set. A direct splice the kernel
// refuses with EINVAL, usually because neither end is a pipe, is retried
// through the bridge; EINVAL on its first call means nothing has moved. If
// the bridge fails too, both errors are kept, since EINVAL may have had
// another cause (an O_APPEND destination, an unsupported file system).
func transfer(srcFD, dstFD, length, flags int, bridge bool, log *zap.Logger) (string, error) {
	if bridge {
		if err := splice.Copy(dstFD, srcFD, length, flags); err != nil {
			return "bridge", fmt.Errorf("bridge transfer: %w", err)
		}
		return "bridge", nil
	}

	direct := splice.Transfer(srcFD, dstFD, length, flags)
	if direct == nil {
		return "direct", nil
	}
	if !errors.Is(direct, unix.EINVAL) {
		return "direct", fmt.Errorf("direct transfer: %w", direct)
	}

	log.Debug("direct splice refused, bridging", zap.Error(direct))
	if err := splice.Copy(dstFD, srcFD, length, flags); err != nil {
		return "bridge", fmt.Errorf("bridge transfer: %w (after direct transfer: %w)", err, direct)
	}
	return "bridge", nil
}

// openSource returns the source file and its closer. The process's stdin is
// never closed.
func openSource(path string, stdin *os.File) (*os.File, func(), error) {
	if path == "-" || path == "" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open source: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func openDestination(path string, stdout *os.File) (*os.File, func(), error) {
	if path == "-" || path == "" {
		return stdout, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open destination: %w", err)
	}
	return f, func() { f.Close() }, nil
}
