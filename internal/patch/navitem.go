package patch

import "regexp"

const (
	// DefaultSplitMarker starts the part of the file that is discarded.
	DefaultSplitMarker = "function NavItem"
	// DefaultAnchorMarker is the last line kept before the replacement block.
	DefaultAnchorMarker = "</Modal>"
	// NavItemPath is the dashboard entry point repaired by the navitem recipe.
	NavItemPath = "dashboard/src/App.jsx"
)

// navItemDetect matches the App component closed twice before NavItem is declared.
var navItemDetect = regexp.MustCompile(`\);\s*\}\s*\);\s*\}\s*function NavItem`)

// NavItemClosingBlock closes the App component and redeclares NavItem and the default export.
const NavItemClosingBlock = `
    </div>
  );
}

function NavItem({ icon, label, active, onClick }) {
  return (
    <button
      className={` + "`nav-item ${active ? 'active' : ''}`" + `}
      onClick={onClick}
    >
      {icon}
      <span>{label}</span>
    </button>
  );
}

export default App;
`

// NavItemRecipe returns the built-in recipe for the dashboard App component.
func NavItemRecipe() *Recipe {
	return &Recipe{
		Name:            "navitem",
		Path:            NavItemPath,
		Detect:          navItemDetect,
		SplitMarker:     DefaultSplitMarker,
		AnchorMarker:    DefaultAnchorMarker,
		Replacement:     NavItemClosingBlock,
		FallbackTrigger: "</main >",
		Fallback: []Replacement{
			{Old: "</main >", New: "</main>"},
			{Old: "</div >", New: "</div>"},
		},
	}
}
