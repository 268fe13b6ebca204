/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package consts provides definitions of constants
package consts

var (
	// TmpContentFileBase is the base for the filename for a temporary content
	TmpContentFileBase = "TRIPNOTE_TMPCONTENT"
	// TmpContentFileExt is the extension for the temporary content file
	TmpContentFileExt = "md"

	// DefaultDeepLinkScheme is the deep link scheme written to a new config file
	DefaultDeepLinkScheme = "tripnote"
	// DefaultLogLevel is the log level written to a new config file
	DefaultLogLevel = "warn"
)
