package transcribe

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"s2x/cmd/s2x/cmd/cli"
	"s2x/internal/app/jobs"
	"s2x/internal/app/model"
	"s2x/internal/app/progress"
)

// Options are the per-submission flags.
type Options struct {
	Language     string
	Model        string
	Temperature  float64
	BeamSize     int
	Wait         bool
	JSON         bool
	ShowProgress bool
}

var opts Options

func init() {
	Register(Cmd, &opts)
}

// Register binds the submission flags to cmd.
func Register(cmd *cobra.Command, o *Options) {
	cmd.Flags().StringVarP(&o.Language, "language", "l", "", "language hint, empty lets the service detect it")
	cmd.Flags().StringVarP(&o.Model, "model", "m", "", "model name, empty selects the service default")
	cmd.Flags().Float64VarP(&o.Temperature, "temperature", "t", 0, "sampling temperature between 0 and 1")
	cmd.Flags().IntVarP(&o.BeamSize, "beam-size", "b", jobs.DefaultBeamSize, "beam size between 1 and 10")
	cmd.Flags().BoolVarP(&o.Wait, "wait", "w", true, "follow the job until it finishes")
	cmd.Flags().BoolVar(&o.JSON, "json", false, "print the final session as JSON")
	cmd.Flags().BoolVarP(&o.ShowProgress, "progress", "p", false, "force the progress spinner even when stderr is not a terminal")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe [audio-url]",
	Short: "Submit an audio URL for transcription and wait for the result",
	Long: `Submit an audio URL for transcription and wait for the result

- Without an argument the audio selected with "s2x library use" is submitted
- A guest user and project are created on first use
- Succeeded jobs are added to the local history`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		audioURL := ""
		if len(args) == 1 {
			audioURL = args[0]
		}
		return Run(cmd.Context(), cmd.OutOrStdout(), audioURL, opts)
	},
}

// Run submits audioURL (or the stored selection when empty) and, when
// o.Wait is set, follows it to completion.
func Run(ctx context.Context, out io.Writer, audioURL string, o Options) error {
	ctx, stop := cli.SignalContext(ctx)
	defer stop()

	tracker := progress.New(progress.Config{
		Enabled: o.Wait && !o.JSON && progress.ShouldShowProgress(o.ShowProgress),
		Writer:  os.Stderr,
	})
	defer tracker.Finish(false)

	a, err := cli.Open(ctx, tracker.Observe)
	if err != nil {
		return err
	}
	defer a.Close()

	if audioURL == "" {
		audioURL = a.Preferences.AudioURL
	}
	if strings.TrimSpace(audioURL) == "" {
		return fmt.Errorf("no audio URL given and none selected; pass one or run \"s2x library use <name>\"")
	}

	if err := a.EnsureIdentity(ctx, false); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	a.Preferences.AudioURL = audioURL
	a.Preferences.Tab = "transcribe"
	if err := a.SavePreferences(ctx); err != nil {
		a.Logger.Warn("failed to save preferences", zap.Error(err))
	}

	req := a.NewSubmitRequest(audioURL)
	req.LanguageHint = o.Language
	req.ModelName = o.Model
	req.Temperature = o.Temperature
	req.BeamSize = o.BeamSize

	snap, err := a.Orchestrator.Submit(ctx, req)
	if err != nil {
		return err
	}
	if !o.Wait {
		return report(out, snap, o.JSON)
	}

	jobID := snap.Job.ID
	tracker.Start("transcribing " + jobID)
	snap, err = a.Orchestrator.Wait(ctx)
	tracker.Finish(err == nil && snap.Phase == jobs.PhaseSucceeded)
	if err != nil {
		if jobs.IsCancelled(err) {
			fmt.Fprintf(os.Stderr, "cancelled; job %s keeps running on the service\n", jobID)
		}
		return err
	}

	if rerr := report(out, snap, o.JSON); rerr != nil {
		return rerr
	}
	if snap.Phase == jobs.PhaseFailed {
		return fmt.Errorf("job %s failed", jobID)
	}
	return nil
}

func report(out io.Writer, snap jobs.Snapshot, asJSON bool) error {
	if asJSON {
		return cli.PrintJSON(out, snap)
	}

	job := snap.Job
	fmt.Fprintf(out, "job:      %s\n", job.ID)
	fmt.Fprintf(out, "status:   %s\n", job.Status)
	if snap.Phase == jobs.PhasePolling {
		fmt.Fprintln(out, "submitted; the service keeps processing without this client")
		return nil
	}
	if lang := job.Language(); lang != "" {
		fmt.Fprintf(out, "language: %s\n", lang)
	}
	if job.Confidence != nil {
		fmt.Fprintf(out, "confidence: %.2f\n", *job.Confidence)
	}
	for _, kind := range []string{"srt", "vtt"} {
		if u, ok := job.Artifacts[kind]; ok {
			fmt.Fprintf(out, "%s:      %s\n", kind, u)
		}
	}
	if snap.HistoryRecorded {
		fmt.Fprintln(out, "history:  saved")
	}
	if snap.LastError != "" {
		fmt.Fprintf(out, "warning:  %s\n", snap.LastError)
	}

	if text := job.Text(); text != "" {
		fmt.Fprintf(out, "\n%s\n", text)
	}
	if len(snap.Segments) > 0 {
		fmt.Fprintln(out)
		writeSegments(out, snap.Segments)
	}
	return nil
}

func writeSegments(out io.Writer, segments []model.Segment) {
	for _, seg := range segments {
		fmt.Fprintf(out, "[%s - %s] %s\n", model.FormatOffset(seg.StartMs), model.FormatOffset(seg.EndMs), seg.Text)
	}
}
