package main

import "github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/pkg/service"

// featuredSeeds are moved to the front of their genre's seed list.
var featuredSeeds = []service.Target{
	{
		Path:     []string{"country", "outlaw country"},
		Filename: "ryan-bingham_southside-of-heaven.json",
	},
	{
		Path:     []string{"rock", "southern rock"},
		Filename: "drive-by-truckers_the-righteous-path.json",
	},
}
