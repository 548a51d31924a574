package efx

import (
	"encoding/binary"
	"fmt"
)

// Game identifies the title that produced an effect file.
type Game uint8

const (
	GameUnknown Game = iota
	FinalFantasyXII
	TacticsOgrePSP
	TacticsOgreReborn
)

func (g Game) String() string {
	switch g {
	case FinalFantasyXII:
		return "FinalFantasyXII"
	case TacticsOgrePSP:
		return "TacticsOgrePSP"
	case TacticsOgreReborn:
		return "TacticsOgreReborn"
	}
	return fmt.Sprintf("Game(%d)", uint8(g))
}

// ParseGame maps a game name, as printed by Game.String, back to its value.
func ParseGame(s string) (Game, error) {
	for _, g := range []Game{FinalFantasyXII, TacticsOgrePSP, TacticsOgreReborn} {
		if g.String() == s {
			return g, nil
		}
	}
	return GameUnknown, fmt.Errorf("%w: game %q", ErrUnknownTarget, s)
}

// Target is the (game, version) pair that selects layout variants.
// It is fixed for a whole file.
type Target struct {
	Game    Game
	Version uint8
}

// Wide reports whether the target uses the enlarged record layouts
// introduced by the Reborn release.
func (t Target) Wide() bool { return t.Game == TacticsOgreReborn }

func (t Target) String() string { return fmt.Sprintf("%s/v%d", t.Game, t.Version) }

// Validate reports whether t is one of the supported combinations.
func (t Target) Validate() error {
	for _, row := range targetTable {
		if row.game == t.Game && t.Version >= row.minVersion && t.Version <= row.maxVersion {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownTarget, t)
}

const (
	minVersion = 8
	maxVersion = 11
)

// targetTable maps the data size that scheduler-meta-add commands declare to
// the game emitting them, together with the file versions that game uses.
var targetTable = []struct {
	metaSize               int32
	game                   Game
	minVersion, maxVersion uint8
}{
	{160, FinalFantasyXII, 8, 10},
	{208, TacticsOgrePSP, 11, 11},
	{320, TacticsOgreReborn, 11, 11},
}

// ResolveTarget maps a scheduler meta size and a file version to a Target.
func ResolveTarget(metaSize int32, version uint8) (Target, error) {
	for _, row := range targetTable {
		if row.metaSize != metaSize {
			continue
		}
		if version < row.minVersion || version > row.maxVersion {
			return Target{}, fmt.Errorf("%w: %s does not use version %d", ErrUnknownTarget, row.game, version)
		}
		return Target{Game: row.game, Version: version}, nil
	}
	return Target{}, fmt.Errorf("%w: scheduler meta size %d", ErrUnknownTarget, metaSize)
}

// DetectTarget inspects the chunk stream of an effect file body (everything
// after the 16-byte header) and infers the target from the data size declared
// by its scheduler-meta-add commands. Every such command must agree.
func DetectTarget(body []byte, version uint8, order binary.ByteOrder) (Target, error) {
	r := NewReader(body, order)
	r.base = headerSize
	return detectTarget(r, version)
}

func detectTarget(r *Reader, version uint8) (Target, error) {
	var (
		metaSize int32
		found    bool
	)
	err := walkChunks(r, func(_ int, chunk *Reader) error {
		hdr, err := readCommandHeader(chunk)
		if err != nil {
			return err
		}
		if hdr.opcode != OpSchedulerMetaAdd {
			return nil
		}
		if found && hdr.dataOffset != metaSize {
			return fmt.Errorf("%w: %d and %d", ErrAmbiguousTarget, metaSize, hdr.dataOffset)
		}
		metaSize, found = hdr.dataOffset, true
		return nil
	})
	if err != nil {
		return Target{}, err
	}
	if !found {
		return Target{}, fmt.Errorf("%w: no scheduler meta command", ErrUnknownTarget)
	}
	return ResolveTarget(metaSize, version)
}

// magicForVersion returns the header magic of a file version.
func magicForVersion(version uint8) (string, error) {
	if version < minVersion || version > maxVersion {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	return fmt.Sprintf("EFX%04d", version), nil
}

// versionFromMagic is the inverse of magicForVersion.
func versionFromMagic(magic string) (uint8, bool) {
	for v := uint8(minVersion); v <= maxVersion; v++ {
		if m, _ := magicForVersion(v); m == magic {
			return v, true
		}
	}
	return 0, false
}
