package instance

import "github.com/angelmondragon/stonefront-backend/pkg/env"

// ID identifies this process in logs. Heroku style DYNO wins over
// INSTANCE_ID; local runs fall back to "local".
func ID() string {
	if id := env.Get("DYNO", ""); id != "" {
		return id
	}
	return env.Get("INSTANCE_ID", "local")
}
