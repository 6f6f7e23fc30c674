//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the demo binary into bin/ember.
func (Build) Demo() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/ember", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs go vet on every package.
func (Build) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Checks the GLSL sources with glslangValidator.
func (Build) Shaders() error {
	_, err := executeCmd("glslangValidator",
		withArgs("default.vert", "default.frag", "light.vert", "light.frag"),
		withDir("assets/shaders"),
		withStream())
	return err
}
