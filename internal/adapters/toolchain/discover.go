// Package toolchain discovers external tools and derives platform triples.
package toolchain

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/embark/internal/core/domain"
)

// LookPathFunc resolves a command name against PATH.
type LookPathFunc func(file string) (string, error)

// Discover locates every external tool embark may invoke. It never fails:
// missing tools leave their field empty and consumers report ErrToolNotFound.
func Discover(getenv func(string) string, lookPath LookPathFunc) domain.Toolchain {
	family := hostFamily()
	find := func(name string) string {
		p, err := lookPath(family.BinaryName(name))
		if err != nil {
			return ""
		}
		return p
	}

	tc := domain.Toolchain{
		Cargo:        find("cargo"),
		Rustc:        find("rustc"),
		AppImageTool: find("appimagetool"),
	}

	tc.FlutterRoot = flutterRoot(getenv, find)
	if tc.FlutterRoot != "" {
		tc.Flutter = filepath.Join(tc.FlutterRoot, "bin", flutterBinary(family))
		tc.EngineVersion = readEngineVersion(tc.FlutterRoot)
	}

	tc.AndroidHome = getenv(domain.EnvAndroidHome)
	if tc.AndroidHome != "" {
		if dir := highestSubdir(filepath.Join(tc.AndroidHome, "build-tools"), ""); dir != "" {
			tc.AAPT = existing(filepath.Join(dir, family.BinaryName("aapt")))
			tc.APKSigner = existing(filepath.Join(dir, apksignerBinary(family)))
		}
		if dir := highestSubdir(filepath.Join(tc.AndroidHome, "platforms"), "android-"); dir != "" {
			tc.AndroidJar = existing(filepath.Join(dir, "android.jar"))
		}
	}
	tc.AndroidNDK = androidNDK(getenv, tc.AndroidHome)
	if tc.AAPT == "" {
		tc.AAPT = find("aapt")
	}
	if tc.APKSigner == "" {
		tc.APKSigner = find("apksigner")
	}

	return tc
}

// AndroidJar returns the platform jar for api inside the Android SDK, or "" when absent.
func AndroidJar(androidHome string, api int) string {
	if androidHome == "" || api <= 0 {
		return ""
	}
	return existing(filepath.Join(androidHome, "platforms", "android-"+strconv.Itoa(api), "android.jar"))
}

// androidNDK prefers ANDROID_NDK_HOME, then the legacy ndk-bundle and the
// newest side-by-side install inside the SDK.
func androidNDK(getenv func(string) string, androidHome string) string {
	if ndk := getenv(domain.EnvAndroidNDK); ndk != "" {
		return existing(ndk)
	}
	if androidHome == "" {
		return ""
	}
	if ndk := existing(filepath.Join(androidHome, "ndk-bundle")); ndk != "" {
		return ndk
	}
	return highestSubdir(filepath.Join(androidHome, "ndk"), "")
}

func flutterRoot(getenv func(string) string, find func(string) string) string {
	if root := getenv(domain.EnvFlutterRoot); root != "" {
		return root
	}

	bin := find("flutter")
	if bin == "" {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(bin); err == nil {
		bin = resolved
	}
	return filepath.Dir(filepath.Dir(bin))
}

func readEngineVersion(root string) string {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(domain.EngineVersionFile))) //nolint:gosec // SDK path
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func flutterBinary(f domain.Family) string {
	if f == domain.FamilyWindows {
		return "flutter.bat"
	}
	return "flutter"
}

func apksignerBinary(f domain.Family) string {
	if f == domain.FamilyWindows {
		return "apksigner.bat"
	}
	return "apksigner"
}

func hostFamily() domain.Family {
	switch runtime.GOOS {
	case "windows":
		return domain.FamilyWindows
	case "darwin":
		return domain.FamilyDarwin
	default:
		return domain.FamilyLinux
	}
}

func existing(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// highestSubdir returns the subdirectory of dir whose name, after prefix, is
// the highest dotted version.
func highestSubdir(dir, prefix string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return ""
	}

	best := slices.MaxFunc(names, func(a, b string) int {
		return compareVersions(strings.TrimPrefix(a, prefix), strings.TrimPrefix(b, prefix))
	})
	return filepath.Join(dir, best)
}

// compareVersions orders dotted numeric versions. Non-numeric parts compare as text.
func compareVersions(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := range max(len(as), len(bs)) {
		var x, y string
		if i < len(as) {
			x = as[i]
		}
		if i < len(bs) {
			y = bs[i]
		}

		xn, xerr := strconv.Atoi(x)
		yn, yerr := strconv.Atoi(y)
		if xerr == nil && yerr == nil {
			if xn != yn {
				return xn - yn
			}
			continue
		}
		if c := strings.Compare(x, y); c != 0 {
			return c
		}
	}
	return 0
}
