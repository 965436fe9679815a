package qpdf

import (
	"context"
	"strings"

	cerrors "crackleaf/internal/errors"
	"crackleaf/internal/log"
)

// Encryption is the classification of "qpdf --show-encryption" output.
type Encryption int

const (
	Unknown Encryption = iota
	Encrypted
	NotEncrypted
)

func (e Encryption) String() string {
	switch e {
	case Encrypted:
		return "encrypted"
	case NotEncrypted:
		return "not-encrypted"
	default:
		return "unknown"
	}
}

// Locked reports whether the file should show the locked glyph.
// Unknown counts as locked so the user can still attempt an unlock.
func (e Encryption) Locked() bool {
	return e != NotEncrypted
}

var (
	encryptedMarkers    = []string{"file is encrypted", "encryption: yes", "user password", "owner password"}
	notEncryptedMarkers = []string{"file is not encrypted", "not encrypted"}
)

// ClassifyEncryption inspects show-encryption stdout case-insensitively.
// Encrypted markers take precedence.
func ClassifyEncryption(stdout string) Encryption {
	lower := strings.ToLower(stdout)
	for _, m := range encryptedMarkers {
		if strings.Contains(lower, m) {
			return Encrypted
		}
	}
	for _, m := range notEncryptedMarkers {
		if strings.Contains(lower, m) {
			return NotEncrypted
		}
	}
	return Unknown
}

// Encryption probes path. Spawn failures and non-zero exits yield Unknown.
func (t *Tool) Encryption(ctx context.Context, path string) Encryption {
	out, err := t.run(ctx, "--show-encryption", path)
	if err != nil {
		log.Warn("encryption probe failed", log.String("path", path), log.Err(err))
		return Unknown
	}
	if !out.Success() {
		log.Debug("encryption probe exited with error",
			log.String("path", path),
			log.Err(cerrors.NewToolError("show-encryption", path, out.ExitCode, string(out.Stderr), cerrors.ErrToolExit)))
		return Unknown
	}
	return ClassifyEncryption(string(out.Stdout))
}

// Decrypt writes a copy of in to out with restrictions removed, using an empty
// password. The returned error wraps ErrToolSpawn or ErrToolExit.
func (t *Tool) Decrypt(ctx context.Context, in, out string) error {
	res, err := t.run(ctx, "--password=", "--decrypt", in, out)
	if err != nil {
		return cerrors.NewToolError("decrypt", in, -1, "", err)
	}
	if !res.Success() {
		return cerrors.NewToolError("decrypt", in, res.ExitCode, string(res.Stderr), cerrors.ErrToolExit)
	}
	return nil
}
