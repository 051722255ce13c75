package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: VerbosityUser},
		{name: "Console output mode", jsonOutput: false, verbosity: VerbosityDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset global logger
			Logger = nil
			JSONOutput = false

			err := Initialize(tt.jsonOutput, tt.verbosity)
			require.NoError(t, err)
			require.NotNil(t, Logger, "Initialize() did not set global Logger")
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.Equal(t, VerbosityToLevel(tt.verbosity) == zapcore.DebugLevel,
				Logger.Desugar().Core().Enabled(zapcore.DebugLevel))

			Logger.Sync()
			Logger = zap.NewNop().Sugar()
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(12))
	assert.Equal(t, "Debug (-vv)", LevelName(VerbosityDebug))
}

func TestCleanupWithNilLogger(t *testing.T) {
	Logger = nil
	defer func() { Logger = zap.NewNop().Sugar() }()

	assert.NotPanics(t, Cleanup)
	assert.NotPanics(t, func() {
		Infow("test", "key", "value")
		Infof("test %s", "format")
		Warnw("test", "key", "value")
		Errorw("test", "key", "value")
		Debugw("test", "key", "value")
	})
}

func TestPackageFunctionsUseGlobalLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Logger = zap.New(core).Sugar()
	defer func() { Logger = zap.NewNop().Sugar() }()

	Infow("File written", FieldPath, "out/demo/Greeter.java", FieldBytes, 42)
	Debugw("Import plan computed", FieldImportLines, 3)
	Warnw("Artifact delete failed", FieldArtifact, "demo.Greeter")

	require.Equal(t, 3, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "File written", entry.Message)
	assert.Equal(t, "out/demo/Greeter.java", entry.ContextMap()[FieldPath])
	assert.Equal(t, zapcore.WarnLevel, logs.All()[2].Level)
}

func TestComponentLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Logger = zap.New(core).Sugar()
	defer func() { Logger = zap.NewNop().Sugar() }()

	log := ChildLogger(ComponentLogger("poet.render"), FieldFile, "demo.Greeter")
	log.Infow("rendered")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "poet.render", logs.All()[0].LoggerName)
	assert.Equal(t, "demo.Greeter", logs.All()[0].ContextMap()[FieldFile])
}
