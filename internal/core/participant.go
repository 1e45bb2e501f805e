package core

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Participant is a user's presence inside a gym room.
type Participant struct {
	Identity string
	Name     string
	Host     bool
}

// PublicView strips the host flag; room listings expose identity and
// display name only.
type PublicView struct {
	Identity string
	Name     string
}

// Public projects a participant to its public fields.
func (p Participant) Public() PublicView {
	return PublicView{Identity: p.Identity, Name: p.Name}
}

// placeholderName generates a display name for participants that join
// without one.
func placeholderName() string {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return "Athlete"
	}
	return fmt.Sprintf("Athlete-%s", hex.EncodeToString(buf))
}
