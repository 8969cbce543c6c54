package render

var (
	FixInvisibleColor = fixInvisibleColor
	RenderOrder       = renderOrder
	ProjectVertices   = projectVertices
)
