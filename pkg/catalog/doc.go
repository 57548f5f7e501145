// Package catalog groups option tables and layouts into modules and
// associates modules with device profiles.
//
// # Hierarchy
//
//	Catalog > Device > Module > Option
//
// A Device is identified by its type name and by its USB vendor/product
// identifiers. Each device exposes one or more named modules:
//
//	gaming_mouse (0x1915:0x52DE)
//	├── sensor    (PMW3360 options: cpi, downshift_*)
//	└── ble_bond  (peer_erase)
//
//	dongle (0x1915:0x52DC)
//	├── qos       (BLE channel evaluation, composite layouts)
//	└── ble_bond  (peer_erase, peer_search)
//
// Module definitions are shared between devices with the same hardware;
// Module.Key names a definition and Module.Name the functional area.
//
// # Built-in catalog
//
// Default returns the nRF Desktop catalog compiled from
// catalogs/nrf_desktop.yaml. Other catalogs can be loaded at run time with
// LoadFile and written back with Marshal.
package catalog
