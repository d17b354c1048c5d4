// gltf_material_extractor.go converts glTF materials into imported material
// data. Internal to the loader package.
package loader

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/lumen-go/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// gltfExtractMaterial converts one glTF material into an ImportedMaterial.
// The deferred pipeline consumes the base color factor, base color texture,
// emissive factor, and alpha mode; the metallic-roughness channels are
// parsed but not carried forward.
//
// Parameters:
//   - p: the parser holding the loaded document
//   - materialIndex: the index of the material to extract
//
// Returns:
//   - ImportedMaterial: the extracted material data
//   - error: error if extraction fails
func gltfExtractMaterial(p gltfParser, materialIndex int) (ImportedMaterial, error) {
	doc := p.Document()
	if materialIndex < 0 || materialIndex >= len(doc.Materials) {
		return ImportedMaterial{}, fmt.Errorf("material index %d out of range", materialIndex)
	}

	src := &doc.Materials[materialIndex]

	mat := ImportedMaterial{
		Name:      src.Name,
		BaseColor: [4]float32{1, 1, 1, 1},
	}
	if mat.Name == "" {
		mat.Name = fmt.Sprintf("material_%d", materialIndex)
	}

	if src.EmissiveFactor != nil {
		mat.Emissive = [4]float32{src.EmissiveFactor[0], src.EmissiveFactor[1], src.EmissiveFactor[2], 0}
	}
	mat.Transparent = src.AlphaMode == gltfAlphaModeBlend

	pbr := src.PbrMetallicRoughness
	if pbr == nil {
		return mat, nil
	}

	if pbr.BaseColorFactor != nil {
		mat.BaseColor = *pbr.BaseColorFactor
	}

	if pbr.BaseColorTexture != nil {
		tex, sampler, err := gltfLoadTexture(p, pbr.BaseColorTexture.Index)
		if err != nil {
			return ImportedMaterial{}, fmt.Errorf("material %q: %w", mat.Name, err)
		}
		mat.AlbedoTexture = tex
		mat.AlbedoSampler = sampler
	}

	return mat, nil
}

// gltfLoadTexture resolves a texture index to its encoded image bytes and
// optional sampler settings. Image data can live in a bufferView (GLB), a
// base64 data URI, or an external file next to the glTF document.
func gltfLoadTexture(p gltfParser, textureIndex int) (*ImportedTexture, *common.SamplerStagingData, error) {
	doc := p.Document()
	if textureIndex < 0 || textureIndex >= len(doc.Textures) {
		return nil, nil, fmt.Errorf("texture index %d out of range", textureIndex)
	}

	tex := &doc.Textures[textureIndex]
	if tex.Source == nil {
		return nil, nil, fmt.Errorf("texture %d has no image source", textureIndex)
	}
	if *tex.Source < 0 || *tex.Source >= len(doc.Images) {
		return nil, nil, fmt.Errorf("texture %d image index %d out of range", textureIndex, *tex.Source)
	}

	img := &doc.Images[*tex.Source]

	imported := &ImportedTexture{
		Name:     img.Name,
		MimeType: img.MimeType,
	}
	if imported.Name == "" {
		imported.Name = tex.Name
	}

	switch {
	case img.BufferView != nil:
		data, err := gltfReadBufferViewRaw(doc, *img.BufferView)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read embedded image: %w", err)
		}
		imported.Data = data
	case strings.HasPrefix(img.URI, "data:"):
		data, mime, err := gltfDecodeDataURI(img.URI)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode image data URI: %w", err)
		}
		imported.Data = data
		if imported.MimeType == "" {
			imported.MimeType = mime
		}
	case img.URI != "":
		fullPath := filepath.Join(p.BaseDir(), img.URI)
		data, err := os.ReadFile(fullPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load image file %q: %w", img.URI, err)
		}
		imported.Data = data
		if imported.Name == "" {
			imported.Name = filepath.Base(img.URI)
		}
	default:
		return nil, nil, fmt.Errorf("image %d has no bufferView or URI", *tex.Source)
	}

	var sampler *common.SamplerStagingData
	if tex.Sampler != nil && *tex.Sampler >= 0 && *tex.Sampler < len(doc.Samplers) {
		s := gltfSamplerToStagingData(&doc.Samplers[*tex.Sampler])
		sampler = &s
	}

	return imported, sampler, nil
}

// gltfReadBufferViewRaw returns the raw bytes of a bufferView without any
// accessor interpretation. Used for images embedded in GLB binary chunks.
func gltfReadBufferViewRaw(doc *gltfDocument, bufferViewIndex int) ([]byte, error) {
	if bufferViewIndex < 0 || bufferViewIndex >= len(doc.BufferViews) {
		return nil, fmt.Errorf("bufferView index %d out of range", bufferViewIndex)
	}

	bv := &doc.BufferViews[bufferViewIndex]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("bufferView %d buffer index %d out of range", bufferViewIndex, bv.Buffer)
	}

	buf := &doc.Buffers[bv.Buffer]
	end := bv.ByteOffset + bv.ByteLength
	if end > len(buf.Data) {
		return nil, fmt.Errorf("bufferView %d extends past end of buffer", bufferViewIndex)
	}

	return buf.Data[bv.ByteOffset:end], nil
}

// gltfDecodeDataURI decodes a base64 data URI and returns the payload plus
// the declared media type.
func gltfDecodeDataURI(uri string) ([]byte, string, error) {
	commaIdx := strings.Index(uri, ",")
	if commaIdx < 0 {
		return nil, "", errInvalidBufferURI
	}

	header := uri[5:commaIdx]
	if !strings.Contains(header, "base64") {
		return nil, "", fmt.Errorf("unsupported data URI encoding: %s", header)
	}

	mime := header
	if semiIdx := strings.Index(header, ";"); semiIdx >= 0 {
		mime = header[:semiIdx]
	}

	data, err := base64.StdEncoding.DecodeString(uri[commaIdx+1:])
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64: %w", err)
	}

	return data, mime, nil
}

// gltfSamplerToStagingData converts glTF sampler parameters into sampler
// staging data, applying the glTF defaults (repeat wrapping, linear filtering)
// for unset fields.
func gltfSamplerToStagingData(s *gltfSampler) common.SamplerStagingData {
	staging := common.SamplerStagingData{
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}

	if s.WrapS != nil {
		staging.AddressModeU = gltfWrapToAddressMode(*s.WrapS)
	}
	if s.WrapT != nil {
		staging.AddressModeV = gltfWrapToAddressMode(*s.WrapT)
	}
	if s.MagFilter != nil && *s.MagFilter == gltfFilterNearest {
		staging.MagFilter = wgpu.FilterModeNearest
	}
	if s.MinFilter != nil {
		switch *s.MinFilter {
		case gltfFilterNearest, gltfFilterNearestMipmapNearest, gltfFilterNearestMipmapLinear:
			staging.MinFilter = wgpu.FilterModeNearest
		}
		switch *s.MinFilter {
		case gltfFilterNearestMipmapNearest, gltfFilterLinearMipmapNearest:
			staging.MipmapFilter = wgpu.MipmapFilterModeNearest
		}
	}

	return staging
}

// gltfWrapToAddressMode converts a glTF wrap constant to an address mode.
func gltfWrapToAddressMode(wrap int) wgpu.AddressMode {
	switch wrap {
	case gltfWrapClampToEdge:
		return wgpu.AddressModeClampToEdge
	case gltfWrapMirroredRepeat:
		return wgpu.AddressModeMirrorRepeat
	default:
		return wgpu.AddressModeRepeat
	}
}
