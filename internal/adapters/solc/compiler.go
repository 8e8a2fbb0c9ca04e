package solc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os/exec"
	"strings"

	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// outputSelection is requested for every contract of every source.
var outputSelection = map[string]map[string][]string{
	"*": {"*": {
		"abi",
		"evm.bytecode.object",
		"evm.bytecode.sourceMap",
		"evm.deployedBytecode.object",
		"devdoc",
		"userdoc",
	}},
}

type standardInput struct {
	Language string                    `json:"language"`
	Sources  map[string]standardSource `json:"sources"`
	Settings standardSettings          `json:"settings"`
}

type standardSource struct {
	Content string `json:"content"`
}

type standardSettings struct {
	EVMVersion      string                         `json:"evmVersion,omitempty"`
	ViaIR           bool                           `json:"viaIR,omitempty"`
	Libraries       map[string]map[string]string   `json:"libraries,omitempty"`
	OutputSelection map[string]map[string][]string `json:"outputSelection"`
}

type standardOutput struct {
	Errors []struct {
		Severity         string `json:"severity"`
		FormattedMessage string `json:"formattedMessage"`
		Message          string `json:"message"`
	} `json:"errors"`
}

// Compiler implements ports.Compiler by running solc in standard JSON mode.
type Compiler struct {
	logger ports.Logger
}

// NewCompiler creates a new Compiler.
func NewCompiler(logger ports.Logger) *Compiler {
	return &Compiler{logger: logger}
}

// Compile feeds the group's sources to solc and returns its JSON output.
func (c *Compiler) Compile(ctx context.Context, req *domain.CompileRequest) ([]byte, error) {
	input, err := json.Marshal(buildInput(req))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode compiler input")
	}

	args := []string{"--standard-json"}
	if req.BasePath != "" {
		args = append(args, "--base-path", req.BasePath, "--allow-paths", req.BasePath)
	}

	cmd := exec.CommandContext(ctx, req.Compiler, args...) //nolint:gosec // compiler path comes from the registry
	cmd.Stdin = bytes.NewReader(input)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = c.stderr(ctx)

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return nil, zerr.With(zerr.With(zerr.Wrap(err, "compiler failed"), "exit_code", exitCode), "compiler", req.Compiler)
	}

	out := stdout.Bytes()
	var parsed standardOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse compiler output"), "compiler", req.Compiler)
	}
	var messages []string
	for _, e := range parsed.Errors {
		if e.Severity != "error" {
			continue
		}
		msg := e.FormattedMessage
		if msg == "" {
			msg = e.Message
		}
		messages = append(messages, strings.TrimSpace(msg))
	}
	if len(messages) > 0 {
		return out, zerr.With(domain.ErrCompilationFailed, "errors", strings.Join(messages, "\n"))
	}
	return out, nil
}

// buildInput assembles the standard JSON input for req.
// Sources are keyed by the names imports use, so no remappings are passed.
func buildInput(req *domain.CompileRequest) standardInput {
	group := req.Group
	in := standardInput{
		Language: "Solidity",
		Sources:  make(map[string]standardSource, len(req.Sources)),
		Settings: standardSettings{
			EVMVersion:      group.Key.EVMVersion,
			ViaIR:           group.Key.ViaIR,
			OutputSelection: outputSelection,
		},
	}
	for key, text := range req.Sources {
		in.Sources[key.String()] = standardSource{Content: text}
	}
	for _, l := range group.Libraries {
		if in.Settings.Libraries == nil {
			in.Settings.Libraries = make(map[string]map[string]string)
		}
		file := l.Module.String()
		if in.Settings.Libraries[file] == nil {
			in.Settings.Libraries[file] = make(map[string]string)
		}
		in.Settings.Libraries[file][l.Name] = l.Address
	}
	return in
}

// stderr streams compiler diagnostics to the active vertex, falling back to the logger.
func (c *Compiler) stderr(ctx context.Context) io.Writer {
	if v, ok := ports.VertexFromContext(ctx); ok {
		return v.Stderr()
	}
	return &logWriter{logger: c.logger}
}

type logWriter struct {
	logger ports.Logger
}

func (w *logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		if line != "" {
			w.logger.Warn(line)
		}
	}
	return len(p), nil
}
