package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and to seed their randomness.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Platform frames per second (default 60)
	Seed     int64 // RNG seed for light phase durations
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Seconds left on the clock when the game was won
	GameOver bool   // Whether the game has reached a terminal outcome
	Won      bool   // Whether the terminal outcome is a win
	Reason   string // Why the game ended ("caught", "timeout"); empty on a win

	Remaining int           // Seconds left on the clock
	Elapsed   time.Duration // Time spent actually playing
}

// StepResult is returned by Game.Step() after each platform frame.
type StepResult struct {
	State GameState
}
