package model

// appendBox adds an axis-aligned box to the mesh. Each face carries its own
// four vertices so normals stay flat.
func appendBox(mesh *Mesh, center, dims [3]float32, color [4]float32) {
	hx, hy, hz := dims[0]/2, dims[1]/2, dims[2]/2
	cx, cy, cz := center[0], center[1], center[2]

	type face struct {
		normal  [3]float32
		corners [4][3]float32
	}
	faces := []face{
		{[3]float32{0, 0, 1}, [4][3]float32{
			{cx - hx, cy - hy, cz + hz}, {cx + hx, cy - hy, cz + hz},
			{cx + hx, cy + hy, cz + hz}, {cx - hx, cy + hy, cz + hz},
		}},
		{[3]float32{0, 0, -1}, [4][3]float32{
			{cx + hx, cy - hy, cz - hz}, {cx - hx, cy - hy, cz - hz},
			{cx - hx, cy + hy, cz - hz}, {cx + hx, cy + hy, cz - hz},
		}},
		{[3]float32{1, 0, 0}, [4][3]float32{
			{cx + hx, cy - hy, cz + hz}, {cx + hx, cy - hy, cz - hz},
			{cx + hx, cy + hy, cz - hz}, {cx + hx, cy + hy, cz + hz},
		}},
		{[3]float32{-1, 0, 0}, [4][3]float32{
			{cx - hx, cy - hy, cz - hz}, {cx - hx, cy - hy, cz + hz},
			{cx - hx, cy + hy, cz + hz}, {cx - hx, cy + hy, cz - hz},
		}},
		{[3]float32{0, 1, 0}, [4][3]float32{
			{cx - hx, cy + hy, cz + hz}, {cx + hx, cy + hy, cz + hz},
			{cx + hx, cy + hy, cz - hz}, {cx - hx, cy + hy, cz - hz},
		}},
		{[3]float32{0, -1, 0}, [4][3]float32{
			{cx - hx, cy - hy, cz - hz}, {cx + hx, cy - hy, cz - hz},
			{cx + hx, cy - hy, cz + hz}, {cx - hx, cy - hy, cz + hz},
		}},
	}

	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	for _, f := range faces {
		base := uint32(len(mesh.Vertices))
		for i, c := range f.corners {
			mesh.Vertices = append(mesh.Vertices, GPUVertex{
				Position: c,
				Normal:   f.normal,
				UV:       uvs[i],
				Color:    color,
			})
		}
		mesh.Indices = append(mesh.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
}

// BuildCarMesh constructs a boxy car: a chassis, a cabin, and four wheels.
// The car faces +Z, its local origin sits at the wheel axle height, and the
// wheels hang below the origin so GroundOffset seats it on the surface.
//
// Returns:
//   - *Mesh: the car geometry
func BuildCarMesh() *Mesh {
	mesh := &Mesh{}

	bodyColor := [4]float32{0.85, 0.1, 0.12, 1}
	cabinColor := [4]float32{0.2, 0.65, 0.9, 1}
	wheelColor := [4]float32{0.08, 0.08, 0.08, 1}

	// Chassis: 1.4 wide, 0.5 tall, 2.6 long.
	appendBox(mesh, [3]float32{0, 0.15, 0}, [3]float32{1.4, 0.5, 2.6}, bodyColor)
	// Cabin sits on the rear half.
	appendBox(mesh, [3]float32{0, 0.62, -0.35}, [3]float32{1.1, 0.45, 1.2}, cabinColor)

	wheelDims := [3]float32{0.25, 0.5, 0.5}
	for _, x := range []float32{-0.75, 0.75} {
		for _, z := range []float32{-0.85, 0.85} {
			appendBox(mesh, [3]float32{x, -0.15, z}, wheelDims, wheelColor)
		}
	}

	return mesh
}

// BuildQuad constructs a vertical quad facing +Z, centered horizontally with
// its bottom edge at y=0. Sized for billboards and signs.
//
// Parameters:
//   - width: quad width
//   - height: quad height
//   - color: vertex color
//
// Returns:
//   - *Mesh: the quad geometry
func BuildQuad(width, height float32, color [4]float32) *Mesh {
	hw := width / 2
	return &Mesh{
		Vertices: []GPUVertex{
			{Position: [3]float32{-hw, 0, 0}, Normal: [3]float32{0, 0, 1}, UV: [2]float32{0, 1}, Color: color},
			{Position: [3]float32{hw, 0, 0}, Normal: [3]float32{0, 0, 1}, UV: [2]float32{1, 1}, Color: color},
			{Position: [3]float32{hw, height, 0}, Normal: [3]float32{0, 0, 1}, UV: [2]float32{1, 0}, Color: color},
			{Position: [3]float32{-hw, height, 0}, Normal: [3]float32{0, 0, 1}, UV: [2]float32{0, 0}, Color: color},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// BuildGroundPlane constructs a flat square plane at y=0 centered on the
// origin, with a checker tint baked into the vertex colors.
//
// Parameters:
//   - size: edge length of the plane
//   - cells: number of quads per edge
//   - colorA: tint for even cells
//   - colorB: tint for odd cells
//
// Returns:
//   - *Mesh: the plane geometry
func BuildGroundPlane(size float32, cells int, colorA, colorB [4]float32) *Mesh {
	if cells < 1 {
		cells = 1
	}
	mesh := &Mesh{}
	step := size / float32(cells)
	half := size / 2

	for cz := 0; cz < cells; cz++ {
		for cx := 0; cx < cells; cx++ {
			color := colorA
			if (cx+cz)%2 == 1 {
				color = colorB
			}
			x0 := -half + float32(cx)*step
			z0 := -half + float32(cz)*step
			base := uint32(len(mesh.Vertices))
			corners := [4][3]float32{
				{x0, 0, z0}, {x0 + step, 0, z0},
				{x0 + step, 0, z0 + step}, {x0, 0, z0 + step},
			}
			uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
			for i, c := range corners {
				mesh.Vertices = append(mesh.Vertices, GPUVertex{
					Position: c,
					Normal:   [3]float32{0, 1, 0},
					UV:       uvs[i],
					Color:    color,
				})
			}
			mesh.Indices = append(mesh.Indices,
				base, base+2, base+1,
				base, base+3, base+2,
			)
		}
	}
	return mesh
}
