// Package scene generates orbit scenes: a flattened plane, a center body
// and a randomized cluster of orbiting bodies, all tilted by one shared
// rigid rotation. Scenes are immutable; each generation produces a new one.
package scene
