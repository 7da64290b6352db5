package engine

import (
	stealth "github.com/anatolykoptev/go-stealth"
)

// UserAgent returns a randomized desktop browser User-Agent.
func UserAgent() string { return stealth.RandomUserAgent() }
