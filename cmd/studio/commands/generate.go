package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	studio "github.com/soffai/studio"
	"github.com/soffai/studio/artifact"
	"github.com/soffai/studio/core"
	"github.com/soffai/studio/credential"
	"github.com/soffai/studio/provider/gemini"
)

var (
	categoryFlag string
	optionFlags  []string
	attachFlags  []string
	sessionFlag  string
)

var generateCmd = &cobra.Command{
	Use:   "generate [prompt...]",
	Short: "Run a generation request",
	Long: `Run a generation request for the given category and prompt.

Text categories print the result to stdout and save a Markdown artifact;
speech saves a WAV file; video polls the operation until the MP4 is fetched.
A prompt may be omitted only when at least one attachment is provided.`,
	RunE: runGenerate,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the supported generation categories",
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range core.Categories() {
			opts := c.RecognizedOptions()
			if len(opts) == 0 {
				fmt.Println(string(c))
				continue
			}
			fmt.Printf("%s (options: %s)\n", string(c), strings.Join(opts, ", "))
		}
	},
}

func init() {
	generateCmd.Flags().StringVarP(&categoryFlag, "category", "g", "", "generation category (see 'studio categories')")
	generateCmd.Flags().StringArrayVarP(&optionFlags, "option", "O", nil, "generation option as key=value (repeatable)")
	generateCmd.Flags().StringArrayVarP(&attachFlags, "attach", "a", nil, "image attachment file (jpeg/png/webp, repeatable)")
	generateCmd.Flags().StringVar(&sessionFlag, "session", "cli", "session identifier")
	_ = generateCmd.MarkFlagRequired("category")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := globalConfig
	category := core.Category(categoryFlag)
	if !category.Valid() {
		return fmt.Errorf("unknown category %q, see 'studio categories'", categoryFlag)
	}

	options, err := parseOptions(optionFlags)
	if err != nil {
		return err
	}
	applyConfigDefaults(category, options, cfg)

	attachments, err := loadAttachments(attachFlags)
	if err != nil {
		return err
	}

	host := credential.NewEnvHost(cfg.APIKeyEnv)
	if _, ok := host.Credential(); !ok {
		return fmt.Errorf("no API key: export %s", cfg.APIKeyEnv)
	}

	s, err := studio.New(cmd.Context(), host, func(o *studio.Options) {
		o.Logger = newLogger()
		o.GeminiOptions = geminiOptions(cfg)
	})
	if err != nil {
		return err
	}

	req := core.NewRequest(category, strings.Join(args, " "), attachments, options)
	if req.Empty() {
		return core.ErrEmptyPrompt
	}

	if category == core.CategoryVideo {
		fmt.Fprintln(os.Stderr, "Generating video; this may take several minutes...")
	}
	result, err := s.GenerateSync(cmd.Context(), sessionFlag, req)
	if err != nil {
		return fmt.Errorf("%s", core.UserMessage(err))
	}

	return emitResult(category, result)
}

// emitResult prints text output and writes the packaged artifact file.
func emitResult(category core.Category, result core.Result) error {
	if text, ok := result.(core.TextResult); ok {
		fmt.Println(text.Content)
		for _, src := range text.Sources {
			fmt.Printf("  [source] %s\n", src.DisplayText())
		}
	}

	file, err := artifact.Package(category, result)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(outputDir, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved %s (%d bytes)\n", path, len(file.Data))
	return nil
}

func parseOptions(pairs []string) (map[string]any, error) {
	options := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q, expected key=value", pair)
		}
		options[key] = value
	}
	return options, nil
}

// applyConfigDefaults fills config-level defaults for options the category
// recognizes but the user did not pass.
func applyConfigDefaults(category core.Category, options map[string]any, cfg *Config) {
	defaults := map[string]string{
		core.OptionVoice:       cfg.Voice,
		core.OptionAspectRatio: cfg.AspectRatio,
	}
	for key, value := range defaults {
		if value == "" || !category.Recognizes(key) {
			continue
		}
		if _, ok := options[key]; !ok {
			options[key] = value
		}
	}
}

func loadAttachments(paths []string) ([]core.Attachment, error) {
	var attachments []core.Attachment
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("attachment %s: %w", path, err)
		}
		mimeType := mimeFromExt(filepath.Ext(path))
		if !core.AllowedAttachmentType(mimeType) {
			return nil, fmt.Errorf("attachment %s: unsupported type (want jpeg/png/webp)", path)
		}
		attachments = append(attachments, core.Attachment{
			Name:     filepath.Base(path),
			MIMEType: mimeType,
			Data:     data,
		})
	}
	return attachments, nil
}

func mimeFromExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}

func geminiOptions(cfg *Config) []func(o *gemini.Options) {
	return []func(o *gemini.Options){func(o *gemini.Options) {
		if cfg.TextModel != "" {
			o.TextModel = cfg.TextModel
		}
		if cfg.SpeechModel != "" {
			o.SpeechModel = cfg.SpeechModel
		}
		if cfg.VideoModel != "" {
			o.VideoModel = cfg.VideoModel
		}
		if cfg.Resolution != "" {
			o.Resolution = cfg.Resolution
		}
	}}
}
