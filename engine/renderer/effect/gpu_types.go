package effect

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraData is the per-frame camera uniform consumed by the geometry and
// forward passes (std140, 64 bytes):
//
//	struct CameraData {
//	    view_proj: mat4x4<f32>,   // offset 0
//	};
type GPUCameraData struct {
	ViewProj [16]float32
}

// Size returns the byte size of the uniform.
func (c *GPUCameraData) Size() int {
	return int(unsafe.Sizeof(*c))
}

// Marshal serializes the uniform to little-endian bytes for GPU upload.
func (c *GPUCameraData) Marshal() []byte {
	buf := make([]byte, c.Size())
	for i, f := range c.ViewProj {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// GPUObjectData is the per-object uniform shared by the geometry, shadow, and
// forward passes (std140, 96 bytes):
//
//	struct ObjectData {
//	    model: mat4x4<f32>,       // offset 0
//	    base_color: vec4<f32>,    // offset 64
//	    emissive: vec4<f32>,      // offset 80
//	};
type GPUObjectData struct {
	Model     [16]float32
	BaseColor [4]float32
	Emissive  [4]float32
}

// Size returns the byte size of the uniform.
func (o *GPUObjectData) Size() int {
	return int(unsafe.Sizeof(*o))
}

// Marshal serializes the uniform to little-endian bytes for GPU upload.
func (o *GPUObjectData) Marshal() []byte {
	buf := make([]byte, o.Size())
	off := 0
	put := func(f float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
		off += 4
	}
	for _, f := range o.Model {
		put(f)
	}
	for _, f := range o.BaseColor {
		put(f)
	}
	for _, f := range o.Emissive {
		put(f)
	}
	return buf
}
