package cmd

import (
	"github.com/isometry/hookctl/internal/config"
	"github.com/isometry/hookctl/internal/helpers"
)

var patchEnvMapString = map[*string]boundEnvVar[string]{
	&config.Patch.Name: {
		Name:        "recipe",
		Description: "The recipe to apply",
		Short:       helpers.Ptr("r"),
		Env:         helpers.Ptr("PATCH_RECIPE"),
	},
	&config.Patch.RecipeFile: {
		Name:        "recipe-file",
		Description: "A YAML file declaring additional recipes",
		Env:         helpers.Ptr("PATCH_RECIPE_FILE"),
	},
	&config.Patch.File: {
		Name:        "file",
		Description: "Override the path of the file the recipe repairs",
		Short:       helpers.Ptr("f"),
		Env:         helpers.Ptr("PATCH_FILE"),
	},
}

var patchEnvMapBool = map[*bool]boundEnvVar[bool]{
	&config.Patch.DryRun: {
		Name:        "dry-run",
		Description: "Print the patched content instead of writing it",
		Env:         helpers.Ptr("PATCH_DRY_RUN"),
	},
}
