package renderer

// sceneShaderSource is the single render pipeline's WGSL. Vertices carry
// position, normal, uv, and color; the uniform block carries the per-draw MVP,
// the model's base color, and a textured flag in flags.x. Lighting is a fixed
// directional lambert term with an ambient floor.
const sceneShaderSource = `
struct Uniforms {
    mvp: mat4x4<f32>,
    base_color: vec4<f32>,
    flags: vec4<f32>,
};

@group(0) @binding(0) var<uniform> uniforms: Uniforms;
@group(0) @binding(1) var tex_sampler: sampler;
@group(0) @binding(2) var tex: texture_2d<f32>;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) uv: vec2<f32>,
    @location(3) color: vec4<f32>,
};

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) normal: vec3<f32>,
    @location(1) uv: vec2<f32>,
    @location(2) color: vec4<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip_position = uniforms.mvp * vec4<f32>(in.position, 1.0);
    out.normal = in.normal;
    out.uv = in.uv;
    out.color = in.color;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let light_dir = normalize(vec3<f32>(0.4, 1.0, 0.3));
    let lit = 0.55 + 0.45 * max(dot(normalize(in.normal), light_dir), 0.0);

    var color = in.color * uniforms.base_color;
    if (uniforms.flags.x > 0.5) {
        color = color * textureSample(tex, tex_sampler, in.uv);
    }
    return vec4<f32>(color.rgb * lit, color.a);
}
`
