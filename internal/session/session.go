// Package session stores and inspects the API session tokens used by fleetctl.
package session

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/firefly-engineering/fleetctl/internal/config"
	"github.com/firefly-engineering/fleetctl/internal/errors"
	"github.com/firefly-engineering/fleetctl/internal/logging"
	"github.com/firefly-engineering/fleetctl/internal/system"
)

// Info describes a session token. The token's signature is checked by the
// API, not here.
type Info struct {
	Subject   string
	ExpiresAt time.Time // zero if the token does not expire
}

// Inspect parses token and rejects it if it has expired at now.
// An expired token yields an error with code FleetExpiredToken.
func Inspect(token string, now time.Time) (*Info, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, errors.Expected(fmt.Sprintf("Invalid session token: %v", err))
	}

	info := &Info{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}

	if !info.ExpiresAt.IsZero() && !now.Before(info.ExpiresAt) {
		expired := errors.NotLoggedIn("session token expired at " + info.ExpiresAt.Format(time.RFC3339))
		expired.Code = errors.CodeExpiredToken
		return nil, expired
	}
	return info, nil
}

// Store keeps one token per profile under the sessions directory.
type Store struct {
	paths *config.Paths
	fs    system.FileSystem
	now   func() time.Time
}

// NewStore creates a Store. A nil fs uses the real filesystem.
func NewStore(paths *config.Paths, fs system.FileSystem) *Store {
	if fs == nil {
		fs = system.DefaultFS()
	}
	return &Store{paths: paths, fs: fs, now: time.Now}
}

// Save validates token and stores it for profile.
func (s *Store) Save(profile, token string) (*Info, error) {
	token = strings.TrimSpace(token)
	info, err := Inspect(token, s.now())
	if err != nil {
		return nil, err
	}

	path, err := s.paths.SessionFile(profile)
	if err != nil {
		return nil, errors.Expected(err.Error())
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, s.wrapFS(err)
	}
	if err := s.fs.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		return nil, s.wrapFS(err)
	}

	logging.Debug("session saved", "profile", profile, "subject", info.Subject)
	return info, nil
}

// Load returns the token stored for profile. It fails with a NotLoggedIn
// error if there is none and with FleetExpiredToken if it has expired.
func (s *Store) Load(profile string) (string, *Info, error) {
	path, err := s.paths.SessionFile(profile)
	if err != nil {
		return "", nil, errors.Expected(err.Error())
	}

	data, err := s.fs.ReadFile(path)
	if errors.CodeOf(err) == errors.CodeNotExist {
		return "", nil, notLoggedIn(profile)
	}
	if err != nil {
		return "", nil, s.wrapFS(err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", nil, notLoggedIn(profile)
	}

	info, err := Inspect(token, s.now())
	if err != nil {
		return "", nil, err
	}
	return token, info, nil
}

// Delete removes the token stored for profile. It reports whether there was one.
func (s *Store) Delete(profile string) (bool, error) {
	path, err := s.paths.SessionFile(profile)
	if err != nil {
		return false, errors.Expected(err.Error())
	}

	err = s.fs.Remove(path)
	if errors.CodeOf(err) == errors.CodeNotExist {
		return false, nil
	}
	if err != nil {
		return false, s.wrapFS(err)
	}
	return true, nil
}

// wrapFS marks permission failures as expected so they are explained
// rather than reported.
func (s *Store) wrapFS(err error) error {
	switch errors.CodeOf(err) {
	case errors.CodePermission, errors.CodeAccess:
		return errors.InsufficientPrivileges(err)
	}
	return err
}

func notLoggedIn(profile string) error {
	msg := "Not logged in. Run `fleetctl login` to start a session."
	if profile != config.DefaultProfile {
		msg = fmt.Sprintf("Not logged in to profile %q. Run `fleetctl login --profile %s` to start a session.", profile, profile)
	}
	return errors.NotLoggedIn(msg)
}
