// internal/app/system/viewdata/viewdata.go

// Package viewdata holds the base view model embedded by every page.
package viewdata

import (
	"net/http"

	"github.com/dalemusser/suggestbox/internal/app/system/auth"
)

// SiteName is the display name used in page titles and the nav bar.
const SiteName = "Suggestion Box"

// BaseVM contains the fields every page template expects. Embed it in a
// feature's view model and populate with NewBaseVM.
type BaseVM struct {
	SiteName string

	IsLoggedIn bool
	IsAdmin    bool
	Role       string
	UserName   string

	Title       string
	BackURL     string
	CurrentPath string
}

// NewBaseVM builds a BaseVM from the request context. backDefault is
// used when the page has no natural parent.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	vm := BaseVM{
		SiteName:    SiteName,
		Title:       title,
		BackURL:     backDefault,
		CurrentPath: r.URL.Path,
	}
	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.Role = u.Role
		vm.UserName = u.Name
		vm.IsAdmin = u.IsAdmin()
	}
	return vm
}
