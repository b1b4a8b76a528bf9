// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrUnknownCommand is returned by Resolve for names not in the registry.
var ErrUnknownCommand = errors.New("command not found")

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// HandlerFunc runs a command. arg is the trimmed remainder of the line.
type HandlerFunc func(ctx *Context, arg string) tea.Cmd

// Command describes one shell command.
type Command struct {
	// Name is the lower-case command word (e.g., "cd").
	Name string

	// Description is shown in help.
	Description string

	// Usage shows argument syntax (e.g., "cd [path]").
	Usage string

	// Args defines the expected arguments.
	Args []ArgDef

	// Handler executes the command.
	Handler HandlerFunc

	// Hidden commands don't appear in help.
	Hidden bool

	// Category for grouping in help display.
	Category string

	// CompletesPaths enables argument-level suggestions against the
	// directory tree.
	CompletesPaths bool
}

// ArgDef documents an argument for help output.
type ArgDef struct {
	Name        string
	Required    bool
	Type        ArgType
	Description string
	// Values for enum types.
	Values []string
}

// ArgType indicates what kind of value an argument takes.
type ArgType int

const (
	ArgTypeString ArgType = iota // Free-form string
	ArgTypePath                  // Path in the directory tree
	ArgTypeEnum                  // One of predefined values
	ArgTypeCommand               // Command name
)

// Categories, in help order.
const (
	CategoryNavigation = "Navigation"
	CategoryInfo       = "Info"
	CategoryProfile    = "Profile"
	CategoryAppearance = "Appearance"
	CategorySystem     = "System"
	CategorySections   = "Sections"
)

var categoryOrder = []string{
	CategoryNavigation,
	CategoryInfo,
	CategoryProfile,
	CategoryAppearance,
	CategorySystem,
	CategorySections,
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds the commands in registration order. It is filled at
// construction and not changed afterwards.
type Registry struct {
	commands map[string]*Command
	order    []string
}

// NewRegistry creates a registry with the built-in commands followed by one
// shortcut command per root section.
func NewRegistry(sections []string) *Registry {
	r := &Registry{commands: make(map[string]*Command)}
	r.registerBuiltins()
	for _, name := range sections {
		r.registerSection(name)
	}
	return r
}

// register adds a command. Later duplicates are ignored so that a section
// named like a builtin cannot shadow it.
func (r *Registry) register(cmd *Command) {
	key := strings.ToLower(cmd.Name)
	if _, exists := r.commands[key]; exists {
		return
	}
	cmd.Name = key
	r.commands[key] = cmd
	r.order = append(r.order, key)
}

// Resolve looks up a command by case-insensitive exact name.
func (r *Registry) Resolve(name string) (*Command, error) {
	if cmd, ok := r.commands[strings.ToLower(name)]; ok {
		return cmd, nil
	}
	return nil, ErrUnknownCommand
}

// Get retrieves a command by name, or nil.
func (r *Registry) Get(name string) *Command {
	cmd, _ := r.Resolve(name)
	return cmd
}

// Names returns every command name in registration order. This is the
// vocabulary used for command-name suggestions.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// All returns all non-hidden commands in registration order.
func (r *Registry) All() []*Command {
	var cmds []*Command
	for _, name := range r.order {
		if cmd := r.commands[name]; !cmd.Hidden {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// ByCategory returns non-hidden commands grouped by category.
func (r *Registry) ByCategory() map[string][]*Command {
	result := make(map[string][]*Command)
	for _, cmd := range r.All() {
		cat := cmd.Category
		if cat == "" {
			cat = CategorySystem
		}
		result[cat] = append(result[cat], cmd)
	}
	return result
}

// Categories returns the categories present, in display order.
func (r *Registry) Categories() []string {
	groups := r.ByCategory()
	var cats []string
	for _, c := range categoryOrder {
		if len(groups[c]) > 0 {
			cats = append(cats, c)
			delete(groups, c)
		}
	}
	var rest []string
	for c := range groups {
		rest = append(rest, c)
	}
	sort.Strings(rest)
	return append(cats, rest...)
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.register(&Command{
		Name:        "help",
		Description: "Show available commands",
		Usage:       "help [command]",
		Args:        []ArgDef{{Name: "command", Type: ArgTypeCommand, Description: "Show usage for one command"}},
		Handler:     HandleHelp,
		Category:    CategorySystem,
	})
	r.register(&Command{
		Name:        "ls",
		Description: "List the current directory",
		Usage:       "ls [path]",
		Args:        []ArgDef{{Name: "path", Type: ArgTypePath}},
		Handler:     HandleLs,
		Category:    CategoryNavigation,
	})
	r.register(&Command{
		Name:           "cd",
		Description:    "Change directory and open that page",
		Usage:          "cd [path]",
		Args:           []ArgDef{{Name: "path", Type: ArgTypePath, Description: "Section, .., ~ or section/title"}},
		Handler:        HandleCd,
		Category:       CategoryNavigation,
		CompletesPaths: true,
	})
	r.register(&Command{
		Name:        "pwd",
		Description: "Print the working directory",
		Usage:       "pwd",
		Handler:     HandlePwd,
		Category:    CategoryNavigation,
	})
	r.register(&Command{
		Name:        "clear",
		Description: "Clear the output panel",
		Usage:       "clear",
		Handler:     HandleClear,
		Category:    CategorySystem,
	})
	r.register(&Command{
		Name:        "history",
		Description: "Show recent commands",
		Usage:       "history",
		Handler:     HandleHistory,
		Category:    CategorySystem,
	})
	r.register(&Command{
		Name:        "whoami",
		Description: "Print the current user",
		Usage:       "whoami",
		Handler:     HandleWhoami,
		Category:    CategoryInfo,
	})
	r.register(&Command{
		Name:        "date",
		Description: "Print the current date and time",
		Usage:       "date",
		Handler:     HandleDate,
		Category:    CategoryInfo,
	})
	r.register(&Command{
		Name:        "echo",
		Description: "Print the arguments",
		Usage:       "echo <text>",
		Args:        []ArgDef{{Name: "text", Type: ArgTypeString}},
		Handler:     HandleEcho,
		Category:    CategoryInfo,
	})
	r.register(&Command{
		Name:        "theme",
		Description: "Show or change the color theme",
		Usage:       "theme [light|dark|toggle]",
		Args: []ArgDef{{
			Name:   "variant",
			Type:   ArgTypeEnum,
			Values: []string{"light", "dark", "toggle"},
		}},
		Handler:  HandleTheme,
		Category: CategoryAppearance,
	})
	r.register(&Command{
		Name:        "resume",
		Description: "Open the resume",
		Usage:       "resume",
		Handler:     HandleResume,
		Category:    CategoryProfile,
	})
	r.register(&Command{
		Name:        "email",
		Description: "Copy the contact email to the clipboard",
		Usage:       "email",
		Handler:     HandleEmail,
		Category:    CategoryProfile,
	})
	r.register(&Command{
		Name:        "socials",
		Description: "List social links",
		Usage:       "socials",
		Handler:     HandleSocials,
		Category:    CategoryProfile,
	})
	r.register(&Command{
		Name:        "ascii",
		Description: "Show some ASCII art",
		Usage:       "ascii",
		Handler:     HandleASCII,
		Category:    CategoryAppearance,
	})
	r.register(&Command{
		Name:        "disco",
		Description: "Party mode",
		Usage:       "disco",
		Handler:     HandleDisco,
		Category:    CategoryAppearance,
	})
	r.register(&Command{
		Name:        "reboot",
		Description: "Restart the shell",
		Usage:       "reboot",
		Handler:     HandleReboot,
		Category:    CategorySystem,
	})
}

// registerSection adds "name" as a shortcut for "cd name".
func (r *Registry) registerSection(name string) {
	section := name
	r.register(&Command{
		Name:        name,
		Description: "Go to " + section,
		Usage:       name,
		Handler: func(ctx *Context, arg string) tea.Cmd {
			return HandleCd(ctx, section)
		},
		Category: CategorySections,
	})
}
