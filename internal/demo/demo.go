// Package demo builds the example trees run by the behave command.
package demo

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	bt "github.com/joeycumines/go-behaviortree"
	"github.com/joeycumines/behave"
	"github.com/joeycumines/behave/internal/blackboard"
	"github.com/joeycumines/behave/internal/interop"
	"github.com/joeycumines/behave/internal/leaf"
)

// DefaultUnit is the base duration of the waits in demo trees.
const DefaultUnit = 100 * time.Millisecond

// Options parameterise tree construction.
type Options struct {
	// Unit scales every Wait in the tree. Zero means DefaultUnit.
	Unit   time.Duration
	Logger *slog.Logger
}

// Tree is a named, buildable example.
type Tree struct {
	Name        string
	Description string
	build       func(Options, *blackboard.Blackboard) (behave.Node, error)
}

// Build constructs a fresh instance of the tree and its blackboard.
func (t Tree) Build(opts Options) (behave.Node, *blackboard.Blackboard, error) {
	if opts.Unit <= 0 {
		opts.Unit = DefaultUnit
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	bb := new(blackboard.Blackboard)
	root, err := t.build(opts, bb)
	if err != nil {
		return nil, nil, fmt.Errorf("demo %s: %w", t.Name, err)
	}
	return root, bb, nil
}

var trees = []Tree{
	{
		Name:        "guard",
		Description: "a guard spots an enemy, closes in, and attacks until it is defeated",
		build:       buildGuard,
	},
	{
		Name:        "countdown",
		Description: "three waits in sequence, each remembered by a once decorator",
		build:       buildCountdown,
	},
	{
		Name:        "door",
		Description: "a search for the key of a locked door that is never found; the run fails",
		build:       buildDoor,
	},
	{
		Name:        "interop",
		Description: "go-behaviortree nodes mixed into a behave selector",
		build:       buildInterop,
	},
}

// All returns every demo tree, sorted by name.
func All() []Tree {
	out := slices.Clone(trees)
	slices.SortFunc(out, func(a, b Tree) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Lookup finds a demo tree by name.
func Lookup(name string) (Tree, bool) {
	for _, t := range trees {
		if t.Name == name {
			return t, true
		}
	}
	return Tree{}, false
}

const spawnScript = `
function tick() {
	bb.set("enemyDistance", 6);
	bb.set("enemyHealth", 3);
	return bt.success;
}
`

const approachScript = `
function tick() {
	bb.set("enemyDistance", bb.get("enemyDistance") - 1);
	return bt.running;
}
`

const attackScript = `
function tick() {
	var hp = bb.get("enemyHealth") - 1;
	bb.set("enemyHealth", hp);
	return hp > 0 ? bt.running : bt.success;
}
`

func buildGuard(opts Options, bb *blackboard.Blackboard) (behave.Node, error) {
	lo := leaf.WithLogger(opts.Logger)
	spawn, err := leaf.NewScript("spawn", spawnScript, bb, lo)
	if err != nil {
		return nil, err
	}
	approach, err := leaf.NewScript("approach", approachScript, bb, lo)
	if err != nil {
		return nil, err
	}
	attack, err := leaf.NewScript("attack", attackScript, bb, lo)
	if err != nil {
		return nil, err
	}
	inRange, err := leaf.NewCondition("in range", "enemyDistance <= 2", bb, lo)
	if err != nil {
		return nil, err
	}
	alive, err := leaf.NewCondition("enemy alive", "enemyHealth > 0", bb, lo)
	if err != nil {
		return nil, err
	}

	return behave.NewSequence("guard",
		behave.NewOnce(spawn),
		behave.NewSelector("respond",
			behave.NewSequence("engage", inRange, alive, attack),
			behave.NewSequence("close in", behave.NewNamedWait("aim", opts.Unit), approach),
		),
	), nil
}

func buildCountdown(opts Options, _ *blackboard.Blackboard) (behave.Node, error) {
	return behave.NewSequence("countdown",
		behave.NewNamedOnce("three", behave.NewNamedWait("3", 3*opts.Unit)),
		behave.NewNamedOnce("two", behave.NewNamedWait("2", 2*opts.Unit)),
		behave.NewNamedOnce("one", behave.NewNamedWait("1", opts.Unit)),
	), nil
}

func buildInterop(opts Options, bb *blackboard.Blackboard) (behave.Node, error) {
	succeed := func([]bt.Node) (bt.Status, error) { return bt.Success, nil }
	count := func([]bt.Node) (bt.Status, error) {
		bb.Update("btTicks", func(old any, present bool) any {
			if !present {
				return 1
			}
			return old.(int) + 1
		})
		return bt.Success, nil
	}
	ticked, err := leaf.NewCondition("bt ticked", "btTicks >= 2", bb, leaf.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}

	return behave.NewSelector("interop",
		interop.FromBT("bt.not", bt.New(bt.Not(succeed)), opts.Logger),
		behave.NewSequence("bridge",
			interop.FromBT("bt.sequence", bt.New(bt.Sequence, bt.New(succeed), bt.New(count)), opts.Logger),
			behave.NewWait(opts.Unit),
			ticked,
		),
	), nil
}

func buildDoor(opts Options, bb *blackboard.Blackboard) (behave.Node, error) {
	bb.Set("doorLocked", true)
	bb.Set("hasKey", false)
	lo := leaf.WithLogger(opts.Logger)
	open, err := leaf.NewCondition("door open", "!doorLocked", bb, lo)
	if err != nil {
		return nil, err
	}
	hasKey, err := leaf.NewCondition("has key", "hasKey", bb, lo)
	if err != nil {
		return nil, err
	}
	return behave.NewSelector("enter",
		open,
		behave.NewSequence("unlock", behave.NewNamedWait("search", opts.Unit), hasKey),
	), nil
}
