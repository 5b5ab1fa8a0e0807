// Copyright 2026 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pbxproj

import "fmt"

// ProductType is the kind of product a target builds. Its value is the one
// character code used by the Bazel rules when passing targets to the
// generators.
type ProductType byte

const (
	Application                       ProductType = 'a'
	MessagesApplication               ProductType = 'M'
	OnDemandInstallCapableApplication ProductType = 'A'
	WatchApp                          ProductType = '0'
	Watch2App                         ProductType = 'w'
	Watch2AppContainer                ProductType = 'c'

	AppExtension            ProductType = 'e'
	IntentsServiceExtension ProductType = 'i'
	MessagesExtension       ProductType = 'm'
	StickerPack             ProductType = 's'
	TVExtension             ProductType = 't'

	ExtensionKitExtension ProductType = 'E'
	WatchExtension        ProductType = '1'
	Watch2Extension       ProductType = 'W'
	XcodeExtension        ProductType = '2'

	ResourceBundle   ProductType = 'b'
	Bundle           ProductType = 'B'
	OCUnitTestBundle ProductType = 'o'
	UnitTestBundle   ProductType = 'u'
	UITestBundle     ProductType = 'U'

	Framework       ProductType = 'f'
	StaticFramework ProductType = 'F'
	XCFramework     ProductType = 'x'

	DynamicLibrary ProductType = 'l'
	StaticLibrary  ProductType = 'L'

	DriverExtension    ProductType = 'd'
	InstrumentsPackage ProductType = 'I'
	MetalLibrary       ProductType = '3'
	SystemExtension    ProductType = 'S'
	CommandLineTool    ProductType = 'T'
	XPCService         ProductType = 'X'
)

type productTypeInfo struct {
	identifier string
	prettyName string
}

var productTypes = map[ProductType]productTypeInfo{
	Application:                       {"com.apple.product-type.application", "App"},
	MessagesApplication:               {"com.apple.product-type.application.messages", "Messages App"},
	OnDemandInstallCapableApplication: {"com.apple.product-type.application.on-demand-install-capable", "App Clip"},
	WatchApp:                          {"com.apple.product-type.application.watchapp", "watchOS 1.0 App"},
	Watch2App:                         {"com.apple.product-type.application.watchapp2", "App"},
	Watch2AppContainer:                {"com.apple.product-type.application.watchapp2-container", "App Container"},
	AppExtension:                      {"com.apple.product-type.app-extension", "App Extension"},
	IntentsServiceExtension:           {"com.apple.product-type.app-extension.intents-service", "Intents Service Extension"},
	MessagesExtension:                 {"com.apple.product-type.app-extension.messages", "Messages Extension"},
	StickerPack:                       {"com.apple.product-type.app-extension.messages-sticker-pack", "Sticker Pack"},
	TVExtension:                       {"com.apple.product-type.tv-app-extension", "App Extension"},
	ExtensionKitExtension:             {"com.apple.product-type.extensionkit-extension", "ExtensionKit Extension"},
	WatchExtension:                    {"com.apple.product-type.watchkit-extension", "WatchKit 1.0 Extension"},
	Watch2Extension:                   {"com.apple.product-type.watchkit2-extension", "WatchKit Extension"},
	XcodeExtension:                    {"com.apple.product-type.xcode-extension", "Xcode Extension"},
	ResourceBundle:                    {"com.apple.product-type.bundle", "Resource Bundle"},
	Bundle:                            {"com.apple.product-type.bundle", "Bundle"},
	OCUnitTestBundle:                  {"com.apple.product-type.bundle.ocunit-test", "OC Unit Tests"},
	UnitTestBundle:                    {"com.apple.product-type.bundle.unit-test", "Unit Tests"},
	UITestBundle:                      {"com.apple.product-type.bundle.ui-testing", "UI Tests"},
	Framework:                         {"com.apple.product-type.framework", "Framework"},
	StaticFramework:                   {"com.apple.product-type.framework.static", "Static Framework"},
	XCFramework:                       {"com.apple.product-type.xcframework", "XCFramework"},
	DynamicLibrary:                    {"com.apple.product-type.library.dynamic", "Dylib"},
	StaticLibrary:                     {"com.apple.product-type.library.static", "Library"},
	DriverExtension:                   {"com.apple.product-type.driver-extension", "Driver Extension"},
	InstrumentsPackage:                {"com.apple.product-type.instruments-package", "Instruments Package"},
	MetalLibrary:                      {"com.apple.product-type.metal-library", "Metal Library"},
	SystemExtension:                   {"com.apple.product-type.system-extension", "System Extension"},
	CommandLineTool:                   {"com.apple.product-type.tool", "Tool"},
	XPCService:                        {"com.apple.product-type.xpc-service", "XPC Service"},
}

// ParseProductType parses a one character product type code.
func ParseProductType(s string) (ProductType, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("invalid product type %q", s)
	}
	pt := ProductType(s[0])
	if _, ok := productTypes[pt]; !ok {
		return 0, fmt.Errorf("unknown product type %q", s)
	}
	return pt, nil
}

func (pt ProductType) info() productTypeInfo {
	info, ok := productTypes[pt]
	if !ok {
		panic(fmt.Sprintf("unknown product type %q", byte(pt)))
	}
	return info
}

// Identifier returns the Xcode product type identifier, e.g.
// "com.apple.product-type.application".
func (pt ProductType) Identifier() string { return pt.info().identifier }

// PrettyName returns the user facing name used to distinguish targets.
func (pt ProductType) PrettyName() string { return pt.info().prettyName }

// String returns the argument code of the product type.
func (pt ProductType) String() string { return string(rune(pt)) }
