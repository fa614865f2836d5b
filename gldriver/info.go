package gldriver

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// Info describes the driver behind the current context.
type Info struct {
	Vendor      string
	Renderer    string
	Version     string
	GLSLVersion string
}

func (d *Driver) Info() Info {
	return Info{
		Vendor:      gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer:    gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:     gl.GoStr(gl.GetString(gl.VERSION)),
		GLSLVersion: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
}

// EnableDebugOutput routes driver debug messages to the gl logger.
func (d *Driver) EnableDebugOutput() {
	gl.DebugMessageCallback(debugMessage, nil)
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
}

func debugMessage(
	source,
	gltype,
	id,
	severity uint32,
	length int32,
	message string,
	user unsafe.Pointer,
) {
	sourceStr := "unknownSource"
	switch source {
	case gl.DEBUG_SOURCE_API:
		sourceStr = "api"
	case gl.DEBUG_SOURCE_APPLICATION:
		sourceStr = "application"
	case gl.DEBUG_SOURCE_OTHER:
		sourceStr = "other"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		sourceStr = "shaderCompiler"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		sourceStr = "thirdParty"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		sourceStr = "windowSystem"
	}

	typeStr := "unknownType"
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		typeStr = "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		typeStr = "deprecatedBehavior"
	case gl.DEBUG_TYPE_MARKER:
		typeStr = "marker"
	case gl.DEBUG_TYPE_OTHER:
		typeStr = "other"
	case gl.DEBUG_TYPE_PERFORMANCE:
		typeStr = "performance"
	case gl.DEBUG_TYPE_POP_GROUP:
		typeStr = "popGroup"
	case gl.DEBUG_TYPE_PORTABILITY:
		typeStr = "portability"
	case gl.DEBUG_TYPE_PUSH_GROUP:
		typeStr = "pushGroup"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		typeStr = "undefinedBehavior"
	}

	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		logger.Errorf("%v: %v; %v", sourceStr, typeStr, message)
	case gl.DEBUG_SEVERITY_MEDIUM:
		logger.Warningf("%v: %v; %v", sourceStr, typeStr, message)
	case gl.DEBUG_SEVERITY_LOW:
		logger.Infof("%v: %v; %v", sourceStr, typeStr, message)
	default:
		logger.Debugf("%v: %v; %v", sourceStr, typeStr, message)
	}
}
