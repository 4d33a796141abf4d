package toolchain_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/embark/internal/adapters/toolchain"
	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const rustcOutput = `rustc 1.80.0 (051478957 2024-07-21)
binary: rustc
commit-hash: 051478957371ee0084a7c0913941d2a8c4757bb9
host: x86_64-apple-darwin
release: 1.80.0
LLVM version: 18.1.7
`

func rustcReplies(output string, err error) func(context.Context, domain.Command) error {
	return func(_ context.Context, cmd domain.Command) error {
		if cmd.Stdout != nil {
			_, _ = io.WriteString(cmd.Stdout, output)
		}
		return err
	}
}

func TestResolver_Host_FromRustc(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockProcessRunner(ctrl)
	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, cmd domain.Command) error {
			assert.Equal(t, "/usr/bin/rustc", cmd.Name)
			assert.Equal(t, []string{"-vV"}, cmd.Args)
			return rustcReplies(rustcOutput, nil)(ctx, cmd)
		})

	r := toolchain.NewResolver(domain.Toolchain{Rustc: "/usr/bin/rustc"}, runner, domain.DefaultPlatforms())

	host, err := r.Host(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformID("x86_64-apple-darwin"), host)
}

func TestResolver_Host_FallsBackWithoutRustc(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockProcessRunner(ctrl)

	r := toolchain.NewResolver(domain.Toolchain{}, runner, domain.DefaultPlatforms())
	r.SetHost("linux", "amd64")

	host, err := r.Host(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformID("x86_64-unknown-linux-gnu"), host)
}

func TestResolver_Host_FallsBackWhenRustcFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockProcessRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(rustcReplies("", errors.New("boom")))

	r := toolchain.NewResolver(domain.Toolchain{Rustc: "rustc"}, runner, domain.DefaultPlatforms())
	r.SetHost("windows", "amd64")

	host, err := r.Host(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformID("x86_64-pc-windows-msvc"), host)
}

func TestResolver_Host_Unsupported(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockProcessRunner(ctrl)

	r := toolchain.NewResolver(domain.Toolchain{}, runner, domain.DefaultPlatforms())
	r.SetHost("plan9", "386")

	_, err := r.Host(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
	assert.Equal(t, domain.ExitResolution, domain.ExitCode(err))
}

func TestResolver_Host_RustcReportsUnknownTriple(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockProcessRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(rustcReplies("host: riscv64gc-unknown-linux-gnu\n", nil))

	r := toolchain.NewResolver(domain.Toolchain{Rustc: "rustc"}, runner, domain.DefaultPlatforms())

	_, err := r.Host(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}

func TestResolver_Target(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockProcessRunner(ctrl)

	r := toolchain.NewResolver(domain.Toolchain{}, runner, domain.DefaultPlatforms())
	r.SetHost("linux", "amd64")

	target, err := r.Target(context.Background(), "aarch64-linux-android")
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformID("aarch64-linux-android"), target)

	target, err = r.Target(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformID("x86_64-unknown-linux-gnu"), target)

	_, err = r.Target(context.Background(), "unknown-triple")
	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}

func TestResolver_Target_ExtendedTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockProcessRunner(ctrl)

	table := domain.DefaultPlatforms().With(domain.PlatformEntry{
		ID:              "x64-linux-host",
		Family:          domain.FamilyLinux,
		VariantTemplate: "linux_x64-host_{profile}",
		Library:         "libflutter_engine.so",
	})
	r := toolchain.NewResolver(domain.Toolchain{}, runner, table)

	target, err := r.Target(context.Background(), "x64-linux-host")
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformID("x64-linux-host"), target)
}

func TestParseHostLine(t *testing.T) {
	host, ok := toolchain.ParseHostLine(rustcOutput)
	assert.True(t, ok)
	assert.Equal(t, "x86_64-apple-darwin", host)

	_, ok = toolchain.ParseHostLine("rustc 1.80.0\nhost:\n")
	assert.False(t, ok)

	_, ok = toolchain.ParseHostLine("")
	assert.False(t, ok)
}
