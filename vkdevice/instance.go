package vkdevice

import (
	"log"
	"unsafe"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
	"golang.org/x/exp/slices"
)

// ValidationLayer is the Khronos validation layer enabled by EnableDebugging.
const ValidationLayer = "VK_LAYER_KHRONOS_validation"

// Version is used to specify versions of components
type Version struct {
	Major int
	Minor int
	Patch int
}

// VKVersion returns a Vulkan compatible version representation
func (v *Version) VKVersion() uint32 {
	return vk.MakeVersion(v.Major, v.Minor, v.Patch)
}

// App is used to provide information about this specific application to Vulkan
type App struct {
	// Name the name of the application
	Name string
	// Engine the name of the engine associated with the application
	EngineName string
	// Version the version of the application
	Version Version
	// APIVersion the expected minimum version of the Vulkan API (i.e. 1.0.0)
	APIVersion Version

	// EnabledLayers the enabled layers
	EnabledLayers []string

	// EnabledExtensions the enabled extensions
	EnabledExtensions []string

	debug bool
}

// SupportedLayers returns a list of supported instance layers. Vulkan must
// have been initialized with vk.Init beforehand.
func SupportedLayers() ([]string, error) {
	var count uint32
	if err := check(vk.EnumerateInstanceLayerProperties(&count, nil), "enumerate instance layers"); err != nil {
		return nil, err
	}
	layers := make([]vk.LayerProperties, count)
	if err := check(vk.EnumerateInstanceLayerProperties(&count, layers), "enumerate instance layers"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(layers))
	for _, layer := range layers[:count] {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, nil
}

// SupportedExtensions returns a list of supported instance extensions. Vulkan
// must have been initialized with vk.Init beforehand.
func SupportedExtensions() ([]string, error) {
	var count uint32
	if err := check(vk.EnumerateInstanceExtensionProperties("", &count, nil), "enumerate instance extensions"); err != nil {
		return nil, err
	}
	exts := make([]vk.ExtensionProperties, count)
	if err := check(vk.EnumerateInstanceExtensionProperties("", &count, exts), "enumerate instance extensions"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(exts))
	for _, ext := range exts[:count] {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// EnableDebugging enables the validation layer and the debug report
// extension, the instance then logs validation messages.
func (a *App) EnableDebugging() error {
	if _, err := a.EnableLayer(ValidationLayer); err != nil {
		return err
	}
	if _, err := a.EnableExtension("VK_EXT_debug_report"); err != nil {
		return err
	}
	a.debug = true
	return nil
}

// EnableLayer enables a layer, failing if the loader does not provide it.
func (a *App) EnableLayer(layer string) (*App, error) {
	layers, err := SupportedLayers()
	if err != nil {
		return a, errors.Wrap(err, "get supported layers")
	}
	if !slices.Contains(layers, layer) {
		return a, errors.Errorf("layer '%s' not found", layer)
	}
	if !slices.Contains(a.EnabledLayers, layer) {
		a.EnabledLayers = append(a.EnabledLayers, layer)
	}
	return a, nil
}

// EnableExtension enables an instance extension, failing if it is not
// supported.
func (a *App) EnableExtension(extension string) (*App, error) {
	exts, err := SupportedExtensions()
	if err != nil {
		return a, errors.Wrap(err, "get supported extensions")
	}
	if !slices.Contains(exts, extension) {
		return a, errors.Errorf("extension '%s' is not supported by vulkan", extension)
	}
	if !slices.Contains(a.EnabledExtensions, extension) {
		a.EnabledExtensions = append(a.EnabledExtensions, extension)
	}
	return a, nil
}

// VKApplicationInfo creates a structure representing this application in a Vulkan friendly format
func (a *App) VKApplicationInfo() vk.ApplicationInfo {
	api := a.APIVersion
	if api.Major < 1 {
		api.Major = 1
	}
	return vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         api.VKVersion(),
		ApplicationVersion: a.Version.VKVersion(),
		PApplicationName:   safeString(a.Name),
		PEngineName:        safeString(a.EngineName),
	}
}

// CreateInstance creates the Vulkan instance.
func (a *App) CreateInstance() (*Instance, error) {
	appInfo := a.VKApplicationInfo()

	extensions := safeStrings(a.EnabledExtensions)
	layers := safeStrings(a.EnabledLayers)

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	instance := &Instance{}
	if err := check(vk.CreateInstance(&createInfo, nil, &instance.VKInstance), "create instance"); err != nil {
		return nil, err
	}
	vk.InitInstance(instance.VKInstance)

	if a.debug {
		if err := instance.SetDebugCallback(DefaultDebugCallback); err != nil {
			instance.Destroy()
			return nil, err
		}
	}
	return instance, nil
}

// Instance is an instance of the Vulkan subsystem
type Instance struct {
	// VKInstance is the native Vulkan instance object
	VKInstance vk.Instance

	debugCallback vk.DebugReportCallback
}

// PhysicalDevices returns a list of physical devices known to Vulkan
func (i *Instance) PhysicalDevices() ([]*PhysicalDevice, error) {
	var count uint32
	if err := check(vk.EnumeratePhysicalDevices(i.VKInstance, &count, nil), "enumerate physical devices"); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	devices := make([]vk.PhysicalDevice, count)
	if err := check(vk.EnumeratePhysicalDevices(i.VKInstance, &count, devices), "enumerate physical devices"); err != nil {
		return nil, err
	}

	ret := make([]*PhysicalDevice, 0, count)
	for _, device := range devices[:count] {
		ret = append(ret, newPhysicalDevice(device))
	}
	return ret, nil
}

// SetDebugCallback installs callback for errors and warnings reported by the
// enabled layers. It requires the VK_EXT_debug_report extension.
func (i *Instance) SetDebugCallback(callback vk.DebugReportCallbackFunc) error {
	ret := vk.CreateDebugReportCallback(i.VKInstance, &vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit | vk.DebugReportPerformanceWarningBit),
		PfnCallback: callback,
	}, nil, &i.debugCallback)
	return check(ret, "create debug report callback")
}

// DefaultDebugCallback - taken from github.com/vulkan-go/asche/
func DefaultDebugCallback(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		log.Printf("ERROR: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		log.Printf("WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		log.Printf("PERFORMANCE WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportDebugBit) != 0:
		log.Printf("DEBUG: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	default:
		log.Printf("INFORMATION: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}

// Destroy destroys the instance. Every object created from it must have been
// destroyed already.
func (i *Instance) Destroy() {
	if i.debugCallback != vk.NullDebugReportCallback {
		vk.DestroyDebugReportCallback(i.VKInstance, i.debugCallback, nil)
		i.debugCallback = vk.NullDebugReportCallback
	}
	vk.DestroyInstance(i.VKInstance, nil)
}
