// Package rendertest provides an in-memory renderer.Device that records every
// call, for tests that must observe handle lifetime and binding order without
// a graphics context.
package rendertest

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/ember/engine/renderer"
)

type ObjectKind uint8

const (
	ObjectBuffer ObjectKind = iota
	ObjectVertexArray
	ObjectShader
	ObjectProgram
	ObjectTexture
)

func (k ObjectKind) String() string {
	return [...]string{"buffer", "vertex_array", "shader", "program", "texture"}[k]
}

type object struct {
	kind    ObjectKind
	deleted int
	target  renderer.BufferTarget
	data    []byte
	stage   renderer.ShaderStage
	width   int
	height  int
}

// Attribute is one recorded VertexAttribute call, with the array buffer that
// was bound when it was made.
type Attribute struct {
	Slot       uint32
	Components int32
	Type       renderer.ComponentType
	Stride     int32
	Offset     int
	Buffer     uint32
}

// Uniform is one recorded uniform upload.
type Uniform struct {
	Program  uint32
	Location int32
	Value    interface{}
}

// DrawCall is one recorded draw with the bindings in effect at the time.
type DrawCall struct {
	Count         int32
	VertexArray   uint32
	ArrayBuffer   uint32
	ElementBuffer uint32
	Program       uint32
	// Textures maps texture unit to bound texture, for non-empty units.
	Textures map[uint32]uint32
}

// Device is a recording renderer.Device. The zero value is not usable, call
// NewDevice.
type Device struct {
	nextID  uint32
	objects map[uint32]*object

	arrayBuffer   uint32
	vertexArray   uint32
	elementBuffer map[uint32]uint32 // per vertex array, 0 is the default one
	attributes    map[uint32][]Attribute
	program       uint32
	activeUnit    uint32
	textures      map[uint32]uint32

	locations map[string]int32
	lookups   map[string]int

	// CompileErrors makes CompileShader fail for a stage with the given log.
	CompileErrors map[renderer.ShaderStage]string
	// LinkError makes LinkProgram fail with the given log when non-empty.
	LinkError string
	// Inactive lists uniform names that resolve to -1.
	Inactive map[string]bool

	Calls    []string
	Uniforms []Uniform
	Draws    []DrawCall
	// Misuse collects calls on unknown or deleted handles.
	Misuse []string
}

var _ renderer.Device = (*Device)(nil)

func NewDevice() *Device {
	return &Device{
		objects:       make(map[uint32]*object),
		elementBuffer: make(map[uint32]uint32),
		attributes:    make(map[uint32][]Attribute),
		textures:      make(map[uint32]uint32),
		locations:     make(map[string]int32),
		lookups:       make(map[string]int),
		CompileErrors: make(map[renderer.ShaderStage]string),
		Inactive:      make(map[string]bool),
	}
}

func (d *Device) record(format string, args ...interface{}) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Device) create(o *object) uint32 {
	d.nextID++
	d.objects[d.nextID] = o
	return d.nextID
}

func (d *Device) lookup(kind ObjectKind, id uint32, op string) *object {
	o, ok := d.objects[id]
	switch {
	case !ok:
		d.Misuse = append(d.Misuse, fmt.Sprintf("%s: unknown %s %d", op, kind, id))
		return nil
	case o.kind != kind:
		d.Misuse = append(d.Misuse, fmt.Sprintf("%s: handle %d is a %s, not a %s", op, id, o.kind, kind))
		return nil
	case o.deleted > 0:
		d.Misuse = append(d.Misuse, fmt.Sprintf("%s: %s %d used after delete", op, kind, id))
		return nil
	}
	return o
}

func (d *Device) remove(kind ObjectKind, id uint32, op string) {
	o, ok := d.objects[id]
	if ok && o.kind == kind && o.deleted > 0 {
		o.deleted++
		d.Misuse = append(d.Misuse, fmt.Sprintf("%s: %s %d deleted twice", op, kind, id))
		return
	}
	if o = d.lookup(kind, id, op); o != nil {
		o.deleted++
	}
}

func (d *Device) CreateBuffer(target renderer.BufferTarget, data []byte) uint32 {
	id := d.create(&object{kind: ObjectBuffer, target: target, data: append([]byte(nil), data...)})
	d.record("CreateBuffer %s %d", target, id)
	return id
}

func (d *Device) DeleteBuffer(id uint32) {
	d.record("DeleteBuffer %d", id)
	d.remove(ObjectBuffer, id, "DeleteBuffer")
}

func (d *Device) BindBuffer(target renderer.BufferTarget, id uint32) {
	d.record("BindBuffer %s %d", target, id)
	if id != 0 {
		d.lookup(ObjectBuffer, id, "BindBuffer")
	}
	switch target {
	case renderer.BufferTargetArray:
		d.arrayBuffer = id
	case renderer.BufferTargetElementArray:
		d.elementBuffer[d.vertexArray] = id
	}
}

func (d *Device) CreateVertexArray() uint32 {
	id := d.create(&object{kind: ObjectVertexArray})
	d.record("CreateVertexArray %d", id)
	return id
}

func (d *Device) DeleteVertexArray(id uint32) {
	d.record("DeleteVertexArray %d", id)
	d.remove(ObjectVertexArray, id, "DeleteVertexArray")
}

func (d *Device) BindVertexArray(id uint32) {
	d.record("BindVertexArray %d", id)
	if id != 0 {
		d.lookup(ObjectVertexArray, id, "BindVertexArray")
	}
	d.vertexArray = id
}

func (d *Device) VertexAttribute(slot uint32, components int32, typ renderer.ComponentType, stride int32, offset int) {
	d.record("VertexAttribute %d", slot)
	if d.vertexArray == 0 {
		d.Misuse = append(d.Misuse, "VertexAttribute: no vertex array bound")
	}
	if d.arrayBuffer == 0 {
		d.Misuse = append(d.Misuse, "VertexAttribute: no array buffer bound")
	}
	d.attributes[d.vertexArray] = append(d.attributes[d.vertexArray], Attribute{
		Slot: slot, Components: components, Type: typ, Stride: stride, Offset: offset, Buffer: d.arrayBuffer,
	})
}

func (d *Device) CompileShader(stage renderer.ShaderStage, source string) (uint32, error) {
	d.record("CompileShader %s", stage)
	if msg, ok := d.CompileErrors[stage]; ok {
		return 0, errors.New(msg)
	}
	return d.create(&object{kind: ObjectShader, stage: stage, data: []byte(source)}), nil
}

func (d *Device) DeleteShader(id uint32) {
	d.record("DeleteShader %d", id)
	d.remove(ObjectShader, id, "DeleteShader")
}

func (d *Device) LinkProgram(shaders ...uint32) (uint32, error) {
	d.record("LinkProgram %v", shaders)
	for _, s := range shaders {
		d.lookup(ObjectShader, s, "LinkProgram")
	}
	if d.LinkError != "" {
		return 0, errors.New(d.LinkError)
	}
	return d.create(&object{kind: ObjectProgram}), nil
}

func (d *Device) DeleteProgram(id uint32) {
	d.record("DeleteProgram %d", id)
	d.remove(ObjectProgram, id, "DeleteProgram")
}

func (d *Device) UseProgram(id uint32) {
	d.record("UseProgram %d", id)
	if id != 0 {
		d.lookup(ObjectProgram, id, "UseProgram")
	}
	d.program = id
}

// UniformLocation hands out increasing locations per distinct name, or -1 for
// names listed in Inactive.
func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.record("UniformLocation %d %s", program, name)
	d.lookup(ObjectProgram, program, "UniformLocation")
	d.lookups[name]++
	if d.Inactive[name] {
		return -1
	}
	loc, ok := d.locations[name]
	if !ok {
		loc = int32(len(d.locations))
		d.locations[name] = loc
	}
	return loc
}

func (d *Device) uniform(loc int32, value interface{}) {
	if d.program == 0 {
		d.Misuse = append(d.Misuse, fmt.Sprintf("uniform upload to location %d with no program bound", loc))
	}
	d.Uniforms = append(d.Uniforms, Uniform{Program: d.program, Location: loc, Value: value})
}

func (d *Device) Uniform1i(location int32, value int32) {
	d.record("Uniform1i %d", location)
	d.uniform(location, value)
}

func (d *Device) Uniform1f(location int32, value float32) {
	d.record("Uniform1f %d", location)
	d.uniform(location, value)
}

func (d *Device) Uniform3f(location int32, value mgl32.Vec3) {
	d.record("Uniform3f %d", location)
	d.uniform(location, value)
}

func (d *Device) UniformMatrix4f(location int32, value mgl32.Mat4) {
	d.record("UniformMatrix4f %d", location)
	d.uniform(location, value)
}

func (d *Device) CreateTexture2D(width, height int, pixels []uint8) uint32 {
	if len(pixels) != 4*width*height {
		d.Misuse = append(d.Misuse, fmt.Sprintf("CreateTexture2D: %d bytes for %dx%d RGBA8", len(pixels), width, height))
	}
	id := d.create(&object{kind: ObjectTexture, width: width, height: height, data: append([]byte(nil), pixels...)})
	d.record("CreateTexture2D %d", id)
	return id
}

func (d *Device) DeleteTexture(id uint32) {
	d.record("DeleteTexture %d", id)
	d.remove(ObjectTexture, id, "DeleteTexture")
}

func (d *Device) ActiveTexture(unit uint32) {
	d.record("ActiveTexture %d", unit)
	d.activeUnit = unit
}

func (d *Device) BindTexture2D(id uint32) {
	d.record("BindTexture2D %d", id)
	if id != 0 {
		d.lookup(ObjectTexture, id, "BindTexture2D")
	}
	if id == 0 {
		delete(d.textures, d.activeUnit)
		return
	}
	d.textures[d.activeUnit] = id
}

func (d *Device) DrawTriangles(count int32) {
	d.record("DrawTriangles %d", count)
	if d.vertexArray == 0 {
		d.Misuse = append(d.Misuse, "DrawTriangles: no vertex array bound")
	}
	textures := make(map[uint32]uint32, len(d.textures))
	for unit, id := range d.textures {
		textures[unit] = id
	}
	d.Draws = append(d.Draws, DrawCall{
		Count:         count,
		VertexArray:   d.vertexArray,
		ArrayBuffer:   d.arrayBuffer,
		ElementBuffer: d.elementBuffer[d.vertexArray],
		Program:       d.program,
		Textures:      textures,
	})
}

// ArrayBuffer returns the current array buffer binding.
func (d *Device) ArrayBuffer() uint32 { return d.arrayBuffer }

// ElementBuffer returns the element buffer binding of the current vertex array.
func (d *Device) ElementBuffer() uint32 { return d.elementBuffer[d.vertexArray] }

// ElementBufferOf returns the element buffer recorded in vertex array vao.
func (d *Device) ElementBufferOf(vao uint32) uint32 { return d.elementBuffer[vao] }

func (d *Device) VertexArray() uint32 { return d.vertexArray }

func (d *Device) Program() uint32 { return d.program }

func (d *Device) ActiveUnit() uint32 { return d.activeUnit }

// Texture returns the texture bound to unit, or 0.
func (d *Device) Texture(unit uint32) uint32 { return d.textures[unit] }

// BoundTextureUnits returns the units with a texture bound, in order.
func (d *Device) BoundTextureUnits() []uint32 {
	units := make([]uint32, 0, len(d.textures))
	for u := range d.textures {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i] < units[j] })
	return units
}

// Attributes returns the attributes recorded for vertex array vao.
func (d *Device) Attributes(vao uint32) []Attribute {
	return append([]Attribute(nil), d.attributes[vao]...)
}

// Lookups returns how many times the location of name was queried.
func (d *Device) Lookups(name string) int { return d.lookups[name] }

// Location returns the location handed out for name, if any.
func (d *Device) Location(name string) (int32, bool) {
	if d.Inactive[name] {
		return -1, d.lookups[name] > 0
	}
	loc, ok := d.locations[name]
	return loc, ok
}

// Live returns how many objects of kind are created and not deleted.
func (d *Device) Live(kind ObjectKind) int {
	n := 0
	for _, o := range d.objects {
		if o.kind == kind && o.deleted == 0 {
			n++
		}
	}
	return n
}

// Deletes returns how many times handle id was deleted.
func (d *Device) Deletes(id uint32) int {
	if o, ok := d.objects[id]; ok {
		return o.deleted
	}
	return 0
}

// BufferData returns the bytes uploaded to buffer id.
func (d *Device) BufferData(id uint32) []byte {
	if o, ok := d.objects[id]; ok && o.kind == ObjectBuffer {
		return o.data
	}
	return nil
}

// TextureSize returns the dimensions of texture id.
func (d *Device) TextureSize(id uint32) (int, int) {
	if o, ok := d.objects[id]; ok && o.kind == ObjectTexture {
		return o.width, o.height
	}
	return 0, 0
}

// TexturePixels returns the RGBA8 bytes uploaded to texture id.
func (d *Device) TexturePixels(id uint32) []byte {
	if o, ok := d.objects[id]; ok && o.kind == ObjectTexture {
		return o.data
	}
	return nil
}

// ResetCalls clears the call log, uniforms and draws but keeps objects and bindings.
func (d *Device) ResetCalls() {
	d.Calls = nil
	d.Uniforms = nil
	d.Draws = nil
}
