// Package programs is the catalogue of fragment shaders compiled into the
// binary, addressable with builtin:<name> locators.
package programs

import "sort"

// Program is a built-in fragment shader.
type Program struct {
	Name           string
	Description    string
	FragmentShader string
}

var programs = map[string]Program{}

// NewProgram registers p, replacing any program of the same name.
func NewProgram(p Program) {
	programs[p.Name] = p
}

// Lookup returns the program registered as name.
func Lookup(name string) (Program, bool) {
	p, ok := programs[name]
	return p, ok
}

// Programs returns every registered program ordered by name.
func Programs() []Program {
	list := make([]Program, 0, len(programs))
	for _, p := range programs {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}
