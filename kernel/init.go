package kernel

import (
	"helloworld/klog"

	"github.com/hanwen/go-fuse/v2/fuse"
)

// Init mounts the attribute and prints the driver's init trace to the
// kernel log, failures included. On failure the server is nil.
func Init(options Options) (*fuse.Server, error) {
	printk := func(level klog.Level, format string, args ...any) {
		if options.Publisher != nil {
			_ = options.Publisher.log.Printk(level, format, args...)
		}
	}
	printk(klog.LevelInfo, "hello_world_sysfs: Initializing sysfs interface")
	server, err := Mount(options)
	if err != nil {
		printk(klog.LevelErr, "hello_world_sysfs: Failed to create sysfs file (%v)", err)
	} else {
		printk(klog.LevelInfo, "hello_world_sysfs: sysfs file created successfully")
	}
	// Printed whether or not the attribute exists.
	printk(klog.LevelInfo, "hello_world_sysfs: device_initcall loaded")
	return server, err
}
