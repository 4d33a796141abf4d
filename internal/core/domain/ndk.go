package domain

import (
	"path/filepath"
	"strconv"
	"strings"
)

// AndroidNDKAPILevel selects the NDK compiler wrappers. It is the lowest level
// every supported android ABI ships wrappers for.
const AndroidNDKAPILevel = 21

// NDKToolchainDir returns the prebuilt LLVM bin directory of the NDK at ndk
// for a development machine of the host family.
func NDKToolchainDir(ndk string, host Family) string {
	tag := "linux-x86_64"
	switch host {
	case FamilyDarwin:
		tag = "darwin-x86_64"
	case FamilyWindows:
		tag = "windows-x86_64"
	}
	return filepath.Join(ndk, "toolchains", "llvm", "prebuilt", tag, "bin")
}

// NDKEnv returns the variables cargo and the cc crate read to compile and
// link target with the NDK at ndk.
func NDKEnv(ndk string, host Family, target PlatformID) map[string]string {
	bin := NDKToolchainDir(ndk, host)

	// armv7 is the only triple whose clang prefix differs from the rust triple.
	prefix := target.String()
	if strings.HasPrefix(prefix, "armv7-") {
		prefix = "armv7a-" + strings.TrimPrefix(prefix, "armv7-")
	}

	clang := prefix + strconv.Itoa(AndroidNDKAPILevel) + "-clang"
	ar := "llvm-ar"
	if host == FamilyWindows {
		clang += ".cmd"
		ar += ".exe"
	}

	lower := strings.ReplaceAll(target.String(), "-", "_")
	env := make(map[string]string, 3)
	env["CARGO_TARGET_"+strings.ToUpper(lower)+"_LINKER"] = filepath.Join(bin, clang)
	env["CC_"+lower] = filepath.Join(bin, clang)
	env["AR_"+lower] = filepath.Join(bin, ar)
	return env
}
