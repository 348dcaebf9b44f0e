package config

const (
	// container layout, all sizes in bytes
	SizeHeader       = 9
	SizePixel        = 3
	MaxFrameCount    = 65535
	MaxFrameWidth    = 65535
	MaxFrameHeight   = 65535
	ContainerExt     = ".leda"
	TempFilePattern  = ".ledanim-*"
	RenderFilePrefix = "frame_"

	// stream defaults
	DefaultFPS       = 30
	DefaultMqttTopic = "home/ledgrid/stream"
)
