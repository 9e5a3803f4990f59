// Package target describes the compilation targets mach can lay types out
// for: a platform/architecture pair whose pointer size, register size and
// endianness drive every size_of/align_of computation in internal/types.
package target

import (
	_ "embed"
	"fmt"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed targets.yaml
var catalogYAML []byte

// Endianness is the byte order of a target's multi-byte values.
type Endianness int

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

// Platform identifies the host operating system a compilation targets.
type Platform int

const (
	Windows Platform = iota
	Linux
	MacOS
	UnknownPlatform
)

func (p Platform) String() string {
	switch p {
	case Windows:
		return "windows"
	case Linux:
		return "linux"
	case MacOS:
		return "macos"
	default:
		return "unknown"
	}
}

// Architecture identifies the instruction set a compilation targets.
type Architecture int

const (
	X86 Architecture = iota
	X64
	ARM
	ARM64
	UnknownArchitecture
)

func (a Architecture) String() string {
	switch a {
	case X86:
		return "x86"
	case X64:
		return "x64"
	case ARM:
		return "arm"
	case ARM64:
		return "arm64"
	default:
		return "unknown"
	}
}

// archInfo is the data-driven side of the architecture enum, loaded once
// from the embedded YAML catalog rather than hardcoded alongside the enum.
type archInfo struct {
	PointerSize  int
	RegisterSize int
	Endianness   Endianness
}

type yamlCatalog struct {
	Platforms []struct {
		Name string `yaml:"name"`
	} `yaml:"platforms"`
	Architectures []struct {
		Name         string `yaml:"name"`
		PointerSize  int    `yaml:"pointer_size"`
		RegisterSize int    `yaml:"register_size"`
		Endianness   string `yaml:"endianness"`
	} `yaml:"architectures"`
}

var archTable = map[Architecture]archInfo{}
var platformNames = map[Platform]bool{}

func init() {
	var cat yamlCatalog
	if err := yaml.Unmarshal(catalogYAML, &cat); err != nil {
		panic(fmt.Sprintf("target: invalid embedded catalog: %v", err))
	}
	for _, p := range cat.Platforms {
		platformNames[platformFromString(p.Name)] = true
	}
	for _, a := range cat.Architectures {
		end := LittleEndian
		if strings.EqualFold(a.Endianness, "big") {
			end = BigEndian
		}
		archTable[architectureFromString(a.Name)] = archInfo{
			PointerSize:  a.PointerSize,
			RegisterSize: a.RegisterSize,
			Endianness:   end,
		}
	}
}

func platformFromString(s string) Platform {
	switch strings.ToLower(s) {
	case "windows":
		return Windows
	case "linux":
		return Linux
	case "macos":
		return MacOS
	default:
		return UnknownPlatform
	}
}

func architectureFromString(s string) Architecture {
	switch strings.ToLower(s) {
	case "x86":
		return X86
	case "x64":
		return X64
	case "arm":
		return ARM
	case "arm64":
		return ARM64
	default:
		return UnknownArchitecture
	}
}

// Target is a (platform, architecture) pair. Every type's size and
// alignment is computed against one.
type Target struct {
	Platform     Platform
	Architecture Architecture
}

// Valid reports whether both fields name a known platform/architecture.
func (t Target) Valid() bool {
	return platformNames[t.Platform] && t.Platform != UnknownPlatform &&
		archKnown(t.Architecture)
}

func archKnown(a Architecture) bool {
	_, ok := archTable[a]
	return ok && a != UnknownArchitecture
}

// PointerSize returns the byte size of a pointer/register on this target.
func (t Target) PointerSize() int { return archTable[t.Architecture].PointerSize }

// RegisterSize returns the byte size of a general-purpose register.
func (t Target) RegisterSize() int { return archTable[t.Architecture].RegisterSize }

// Endianness returns the target's byte order.
func (t Target) Endianness() Endianness { return archTable[t.Architecture].Endianness }

func (t Target) String() string {
	return fmt.Sprintf("%s/%s", t.Platform, t.Architecture)
}

// Parse parses a "platform/architecture" string, or the literal "current"
// for the host target. Grounded on the original target_from_string, which
// accepts the same two forms.
func Parse(s string) (Target, error) {
	if s == "current" {
		return Current(), nil
	}
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return Target{}, fmt.Errorf("target: malformed target %q, want \"platform/arch\"", s)
	}
	t := Target{
		Platform:     platformFromString(parts[0]),
		Architecture: architectureFromString(parts[1]),
	}
	if !t.Valid() {
		return Target{}, fmt.Errorf("target: unknown platform/architecture in %q", s)
	}
	return t, nil
}

// KnownPlatforms returns every platform named in the embedded catalog.
func KnownPlatforms() []Platform {
	out := make([]Platform, 0, len(platformNames))
	for p := range platformNames {
		out = append(out, p)
	}
	return out
}

// KnownArchitectures returns every architecture named in the embedded
// catalog.
func KnownArchitectures() []Architecture {
	out := make([]Architecture, 0, len(archTable))
	for a := range archTable {
		out = append(out, a)
	}
	return out
}

// Current returns the host target, derived from runtime.GOOS/GOARCH.
func Current() Target {
	return Target{
		Platform:     platformFromGOOS(runtime.GOOS),
		Architecture: architectureFromGOARCH(runtime.GOARCH),
	}
}

func platformFromGOOS(goos string) Platform {
	switch goos {
	case "windows":
		return Windows
	case "linux":
		return Linux
	case "darwin":
		return MacOS
	default:
		return UnknownPlatform
	}
}

func architectureFromGOARCH(goarch string) Architecture {
	switch goarch {
	case "386":
		return X86
	case "amd64":
		return X64
	case "arm":
		return ARM
	case "arm64":
		return ARM64
	default:
		return UnknownArchitecture
	}
}
