package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/OpenPrinting/go-mfp/util/uuid"
	"github.com/grandcat/zeroconf"
	"golang.org/x/term"

	"github.com/mzyy94/pclraster/internal/config"
	"github.com/mzyy94/pclraster/internal/halftone"
	"github.com/mzyy94/pclraster/internal/imagesrc"
	"github.com/mzyy94/pclraster/internal/jetdirect"
	"github.com/mzyy94/pclraster/internal/pcl"
	"github.com/mzyy94/pclraster/internal/proof"
	"github.com/mzyy94/pclraster/internal/spool"
	"github.com/mzyy94/pclraster/internal/webui"
)

const usage = `usage: pclraster [command] [flags]

commands:
  serve              run the HTTP API (default)
  render [flags] IMG encode IMG as a PCL job
  proof [flags] IMG  write a PDF placement proof of IMG
  models [MODEL]     list printer models or show one model's parameters
`

func main() {
	logLevel := parseLogLevel(envStr("PCLRASTER_LOG_LEVEL", "info"))
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		slog.Error("pclraster failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cmd := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}
	switch cmd {
	case "serve":
		return serve(ctx)
	case "render":
		return render(ctx, args, stdout)
	case "proof":
		return runProof(args)
	case "models":
		return listModels(args, stdout)
	case "help":
		fmt.Fprint(stdout, usage)
		return nil
	}
	return fmt.Errorf("unknown command %q\n%s", cmd, usage)
}

// --- serve ---

func serve(ctx context.Context) error {
	listenPort := envInt("PCLRASTER_LISTEN_PORT", 8080)
	dataDir := os.Getenv("PCLRASTER_DATA_DIR")
	printerAddr := os.Getenv("PCLRASTER_PRINTER_ADDR")
	serviceName := envStr("PCLRASTER_SERVICE_NAME", "pclraster")

	store := config.NewMemoryStore()
	if dataDir != "" {
		var err error
		if store, err = config.NewStore(dataDir); err != nil {
			return fmt.Errorf("open settings in %s: %w", dataDir, err)
		}
	}
	if s := store.Get(); printerAddr != "" && s.PrinterAddr == "" {
		s.PrinterAddr = printerAddr
		if err := store.Update(s); err != nil {
			slog.Warn("settings save failed", "err", err)
		}
	}

	addr := fmt.Sprintf(":%d", listenPort)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: logMiddleware(webui.NewHandler(store)),
	}

	// Start mDNS advertisement
	mdnsServer, err := zeroconf.Register(
		serviceName,
		"_http._tcp",
		"local.",
		listenPort,
		txtRecords(serviceName),
		nil,
	)
	if err != nil {
		return fmt.Errorf("mDNS registration: %w", err)
	}
	defer mdnsServer.Shutdown()
	slog.Info("mDNS registered", "name", serviceName, "service", "_http._tcp")

	errc := make(chan error, 1)
	go func() {
		slog.Info("API server starting", "addr", addr, "url", fmt.Sprintf("http://%s/api", net.JoinHostPort(localIP(), strconv.Itoa(listenPort))))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		return fmt.Errorf("HTTP server: %w", err)
	}
	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown error", "err", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func txtRecords(name string) []string {
	models := pcl.Models()
	ids := make([]string, 0, len(models))
	for _, m := range models {
		if m != 0 {
			ids = append(ids, strconv.Itoa(m))
		}
	}
	return []string{
		"txtvers=1",
		"path=/api",
		"pdl=application/vnd.hp-PCL",
		"uuid=" + fmt.Sprint(uuid.SHA1(uuid.NameSpaceDNS, "pclraster."+name)),
		"models=" + strings.Join(ids, ","),
	}
}

// localIP returns the address the OS would use to reach the LAN, found by
// dialing the all-hosts multicast group.
func localIP() string {
	conn, err := net.Dial("udp4", "224.0.0.1:80")
	if err != nil {
		return "0.0.0.0"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// --- render / proof ---

func jobFlags(fs *flag.FlagSet) *config.Settings {
	s := config.DefaultSettings()
	s.Scaling = 0
	fs.IntVar(&s.Model, "model", s.Model, "printer model number")
	fs.StringVar(&s.MediaSize, "media", s.MediaSize, "media size name")
	fs.StringVar(&s.MediaType, "media-type", "", "media type name")
	fs.StringVar(&s.MediaSource, "source", "", "media source name")
	fs.StringVar(&s.Resolution, "resolution", "", "resolution, e.g. 300x300")
	fs.StringVar(&s.InkType, "ink", "", "ink type")
	fs.StringVar(&s.Output, "output", s.Output, "color, gray or monochrome")
	fs.StringVar(&s.Orientation, "orientation", s.Orientation, "auto, portrait or landscape")
	fs.Float64Var(&s.Scaling, "scaling", s.Scaling, "percent of the page (>0), pixels per inch (<0), 0 for image dpi")
	fs.Float64Var(&s.Density, "density", s.Density, "ink density")
	fs.StringVar(&s.ImageType, "type", s.ImageType, "continuous, lineart or solid")
	return &s
}

// loadJob decodes the image named by the single positional argument and
// resolves the job for it.
func loadJob(fs *flag.FlagSet, s *config.Settings) (*pcl.Job, *imagesrc.Source, error) {
	if fs.NArg() != 1 {
		return nil, nil, fmt.Errorf("%s: need exactly one image file", fs.Name())
	}
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	src, format, err := imagesrc.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", fs.Arg(0), err)
	}
	req, err := s.RequestFor(src.DPI())
	if err != nil {
		return nil, nil, err
	}
	job, err := pcl.Resolve(req)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range job.Warnings {
		slog.Warn("option substituted", "err", w)
	}
	slog.Info("image loaded", "path", fs.Arg(0), "format", format, "width", src.Width(), "height", src.Height(), "dpi", src.DPI())
	return job, src, nil
}

func render(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	s := jobFlags(fs)
	out := fs.String("o", "-", "output file (- for stdout; .gz and .zst are compressed)")
	printer := fs.String("printer", envStr("PCLRASTER_PRINTER_ADDR", ""), "send to host[:port] instead of writing a file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	job, src, err := loadJob(fs, s)
	if err != nil {
		return err
	}

	if *printer != "" {
		pr, pw := io.Pipe()
		errc := make(chan error, 1)
		go func() {
			err := encode(ctx, pw, job, src)
			pw.CloseWithError(err)
			errc <- err
		}()
		_, err := jetdirect.Send(ctx, *printer, pr)
		pr.Close()
		if encErr := <-errc; err == nil {
			err = encErr
		}
		return err
	}

	var w io.WriteCloser = nopWriteCloser{stdout}
	if f, ok := stdout.(*os.File); ok && *out == "-" && term.IsTerminal(int(f.Fd())) {
		return errors.New("render: refusing to write PCL to a terminal, use -o or -printer")
	}
	if *out != "-" {
		if w, err = spool.Create(*out); err != nil {
			return err
		}
	}
	err = encode(ctx, w, job, src)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

func encode(ctx context.Context, w io.Writer, job *pcl.Job, src *imagesrc.Source) error {
	enc, err := pcl.NewEncoder(w, job, halftone.New())
	if err != nil {
		return err
	}
	return enc.PrintPage(ctx, src)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func runProof(args []string) error {
	fs := flag.NewFlagSet("proof", flag.ContinueOnError)
	s := jobFlags(fs)
	out := fs.String("o", "proof.pdf", "output PDF file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	job, src, err := loadJob(fs, s)
	if err != nil {
		return err
	}
	if err := proof.WriteFile(job, src, *out); err != nil {
		return err
	}
	slog.Info("proof written", "path", *out)
	return nil
}

// --- models ---

func listModels(args []string, stdout io.Writer) error {
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	if len(args) == 0 {
		fmt.Fprintln(tw, "MODEL\tCOLOR\tMAX WIDTH\tMAX HEIGHT")
		for _, m := range pcl.Models() {
			c, _ := pcl.Lookup(m)
			w, h := c.Limits()
			fmt.Fprintf(tw, "%d\t%t\t%d\t%d\n", m, c.IsColor(), w, h)
		}
		return tw.Flush()
	}

	model, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid model %q", args[0])
	}
	c, ok := pcl.Lookup(model)
	if !ok {
		return fmt.Errorf("unknown model %d", model)
	}
	fmt.Fprintln(tw, "PARAMETER\tDEFAULT\tVALUES")
	for _, name := range pcl.ParameterNames {
		values := c.Parameters(name)
		if values == nil {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, c.DefaultParameter(name), strings.Join(values, ", "))
	}
	return tw.Flush()
}

// --- helpers ---

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// responseRecorder captures the status code for logging.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: 200}
		start := time.Now()
		next.ServeHTTP(rec, r)
		slog.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote", r.RemoteAddr,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
